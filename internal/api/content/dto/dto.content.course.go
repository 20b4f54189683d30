// Package contentdto - DTO đầu vào cho domain Content: khóa học, block, asset, thư viện, enrollment.
package contentdto

// CourseCreateInput dữ liệu đầu vào khi tạo khóa học
type CourseCreateInput struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description,omitempty"`
	Language    string                 `json:"language,omitempty"`
	Status      string                 `json:"status,omitempty" transform:"string,default=active"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// CourseUpdateInput dữ liệu đầu vào khi cập nhật khóa học
type CourseUpdateInput struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Language    string                 `json:"language,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
