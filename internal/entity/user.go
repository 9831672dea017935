package entity

// User is one connected client. The ID is the connection handle assigned by
// the transport and is unique for the lifetime of the connection.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Online    bool   `json:"online"`
	Playing   bool   `json:"playing"`
	Available bool   `json:"available"`
}

func NewUser(id string) *User {
	return &User{
		ID:     id,
		Online: true,
	}
}

// IsNamed reports whether the user has supplied a display name. Only named
// users are eligible as matchmaking candidates.
func (that *User) IsNamed() bool {
	return that.Name != ""
}
