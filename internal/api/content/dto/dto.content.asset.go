package contentdto

// StaticAssetCreateInput dữ liệu đầu vào khi upload static asset.
// Data nhận base64 qua JSON ([]byte tự decode); Size và ContentHash do server tính.
type StaticAssetCreateInput struct {
	CourseID    string `json:"courseId" validate:"required" transform:"str_objectid"`
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data" validate:"required"`
}

// StaticAssetUpdateInput dữ liệu đầu vào khi cập nhật static asset (ghi đè nội dung)
type StaticAssetUpdateInput struct {
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
}
