// Package clipboarddto - DTO đầu vào cho domain Clipboard.
package clipboarddto

// ClipboardCopyInput dữ liệu đầu vào khi copy một block vào clipboard
type ClipboardCopyInput struct {
	BlockID string `json:"blockId" validate:"required" transform:"str_objectid"`
}

// ClipboardPasteInput dữ liệu đầu vào khi paste clipboard vào một vị trí đích.
// DestParentID rỗng nghĩa là paste thành block root của khóa học đích.
type ClipboardPasteInput struct {
	DestCourseID string `json:"destCourseId" validate:"required" transform:"str_objectid"`
	DestParentID string `json:"destParentId,omitempty" transform:"str_objectid_ptr,optional"`
}
