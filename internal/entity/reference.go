package entity

// Tabelas de referência (somente leitura). Uma linha existir não significa
// que ela é utilizável: os lookups filtram por active=1 e deleted=0.

type State struct {
	StateID int64  `json:"m_state_id"`
	Name    string `json:"m_state_name"`
	Active  int64  `json:"m_state_active"`
	Deleted int64  `json:"m_state_deleted"`
}

type PincodeCity struct {
	PincodeID int64  `json:"m_pincode_id"`
	Value     string `json:"m_pincode_value"`
	CityID    int64  `json:"m_pincode_city_id"`
	Active    int64  `json:"m_pincode_active"`
	Deleted   int64  `json:"m_pincode_deleted"`
}

type User struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
