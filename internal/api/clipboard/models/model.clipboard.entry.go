// Package models - Model thuộc domain Clipboard: staged content chờ paste.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StagedBlock là một node trong subtree đã được serialize vào clipboard.
// Không mang ID của block gốc — khi paste, toàn bộ cây được cấp ID mới.
// SourceLibraryBlockID được giữ nguyên để block paste ra vẫn trỏ về thư viện.
type StagedBlock struct {
	BlockType            string                 `json:"blockType" bson:"blockType"`
	DisplayName          string                 `json:"displayName" bson:"displayName"`
	Definition           map[string]interface{} `json:"definition,omitempty" bson:"definition,omitempty"`
	SourceLibraryBlockID *primitive.ObjectID    `json:"sourceLibraryBlockId,omitempty" bson:"sourceLibraryBlockId,omitempty"`
	Children             []StagedBlock          `json:"children,omitempty" bson:"children,omitempty"`
}

// StagedAsset là một mục trong manifest asset của clipboard:
// tên file và content hash tại thời điểm copy.
type StagedAsset struct {
	Name        string `json:"name" bson:"name"`
	ContentHash string `json:"contentHash" bson:"contentHash"`
}

// ClipboardEntry là nội dung staged của một người dùng, chờ paste.
// Mỗi người dùng chỉ có một entry — copy lần sau ghi đè lần trước.
type ClipboardEntry struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của clipboard entry

	UserID         primitive.ObjectID `json:"userId" bson:"userId" index:"unique"`                 // Người dùng sở hữu clipboard (1 entry/user)
	SourceBlockID  primitive.ObjectID `json:"sourceBlockId" bson:"sourceBlockId"`                  // Block gốc được copy (provenance khi paste)
	SourceCourseID primitive.ObjectID `json:"sourceCourseId" bson:"sourceCourseId"`                // Khóa học chứa block gốc (nguồn copy asset)
	SourceTitle    string             `json:"sourceTitle,omitempty" bson:"sourceTitle,omitempty"`  // Tên hiển thị của block gốc (hiện trên UI)

	Content StagedBlock   `json:"content" bson:"content"`                   // Subtree đã serialize
	Assets  []StagedAsset `json:"assets,omitempty" bson:"assets,omitempty"` // Manifest asset được tham chiếu trong subtree

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian copy
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
