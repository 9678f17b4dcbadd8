package media

// File is an uploaded file read from a multipart request
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadedImage is the result of storing one image
type UploadedImage struct {
	ImageURL string `json:"imageUrl"`
	Key      string `json:"key"`
}

// UploadedImages is the result of a multi-file upload
type UploadedImages struct {
	Images []UploadedImage `json:"images"`
}

// DeleteImageRequest names the object to remove
type DeleteImageRequest struct {
	Key string `json:"key" binding:"required"`
}
