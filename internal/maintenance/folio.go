package maintenance

import (
	"math/rand"
	"strconv"
)

type FolioGenerator interface {
	Next() string
}

type randomFolioGenerator struct{}

// NewRandomFolioGenerator выдаёт шестизначные номера 100000-999999.
// Уникальность обеспечивает индекс в БД и повторная генерация в сервисе.
func NewRandomFolioGenerator() FolioGenerator {
	return randomFolioGenerator{}
}

func (randomFolioGenerator) Next() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
