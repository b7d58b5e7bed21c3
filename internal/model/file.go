package model

type UploadImageRequest struct{}

type UploadImageResponse struct {
	Url string `json:"url"`
}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	Urls map[string]string `json:"urls"`
}
