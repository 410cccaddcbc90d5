package maintenance

import "strings"

// DeriveStatus - единственный источник статуса оборудования.
func DeriveStatus(clientID string) string {
	if strings.TrimSpace(clientID) != "" {
		return StatusAssigned
	}
	return StatusAvailable
}
