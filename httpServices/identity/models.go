package httpServices

type IdentityUser struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    IdentityUser `json:"user"`
}

type RegisterResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    IdentityUser `json:"user"`
}

type registerPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
