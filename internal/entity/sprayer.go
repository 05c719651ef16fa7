package entity

type Sprayer struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Expertise   string `json:"expertise"`
}
