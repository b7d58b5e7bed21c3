package model

type ShortUser struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	AvatarURL map[string]string `json:"avatar_url,omitempty"`
}

type User struct {
	ShortUser
	WalletAddress string            `json:"wallet_address,omitempty"`
	Role          string            `json:"role,omitempty"`
	Bio           string            `json:"bio"`
	Interests     []string          `json:"interests"`
	SocialLinks   map[string]string `json:"social_links"`
}

type GetMeRequest struct{}

type GetMeResponse User

type UpdateUserRequest struct {
	Name        string            `json:"name"`
	Bio         string            `json:"bio"`
	Interests   []string          `json:"interests"`
	SocialLinks map[string]string `json:"social_links"`
}

type UpdateUserResponse struct{}

type GetPublicProfileRequest struct {
	Name string `json:"name" form:"name"`
}

type GetPublicProfileResponse struct {
	User   User    `json:"user"`
	Events []Event `json:"events"`
}
