package dto

type TyreFilters struct {
	SearchQuery string   `json:"q"`             // brand or model substring, case-insensitive
	TubeType    string   `json:"tube_type"`     // case-insensitive equality
	IDs         []string `json:"ids,omitempty"` // nil means unrestricted, empty matches nothing
}
