package dto

type ImportRowErrorDTO struct {
	Row     int    `json:"row"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

type ImportResultDTO struct {
	Entity     string              `json:"entity"`
	Total      int                 `json:"total"`
	Created    int                 `json:"created"`
	Updated    int                 `json:"updated"`
	Failed     int                 `json:"failed"`
	Errors     []ImportRowErrorDTO `json:"errors"`
	ArchivedAs string              `json:"archived_as,omitempty"`
}
