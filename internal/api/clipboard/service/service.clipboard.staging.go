// Package clipboardsvc - Service cho domain Clipboard: copy/paste subtree giữa các khóa học.
package clipboardsvc

import (
	"regexp"
	"sort"

	clipboardmodels "meta_learning/internal/api/clipboard/models"
	contentmodels "meta_learning/internal/api/content/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// staticAssetRefPattern bắt các tham chiếu /static/<tên file> trong nội dung block
var staticAssetRefPattern = regexp.MustCompile(`/static/([^"'\s)\\]+)`)

// BuildStagedTree serialize một subtree block thành StagedBlock.
// childrenOf map parentID hex → danh sách con đã sắp theo position.
// ID block gốc không được giữ lại — paste sẽ cấp ID mới; riêng sourceLibraryBlockId giữ nguyên.
func BuildStagedTree(root contentmodels.CourseBlock, childrenOf map[string][]contentmodels.CourseBlock) clipboardmodels.StagedBlock {
	staged := clipboardmodels.StagedBlock{
		BlockType:            root.BlockType,
		DisplayName:          root.DisplayName,
		Definition:           root.Definition,
		SourceLibraryBlockID: root.SourceLibraryBlockID,
	}
	for _, child := range childrenOf[root.ID.Hex()] {
		staged.Children = append(staged.Children, BuildStagedTree(child, childrenOf))
	}
	return staged
}

// CollectAssetReferences thu thập tên các static asset được tham chiếu (/static/<name>)
// trong definition của toàn bộ subtree. Kết quả không trùng lặp, sắp theo alphabet.
func CollectAssetReferences(staged clipboardmodels.StagedBlock) []string {
	seen := make(map[string]bool)
	collectAssetRefs(staged, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectAssetRefs(staged clipboardmodels.StagedBlock, seen map[string]bool) {
	scanValueForAssetRefs(staged.Definition, seen)
	for _, child := range staged.Children {
		collectAssetRefs(child, seen)
	}
}

func scanValueForAssetRefs(value interface{}, seen map[string]bool) {
	switch v := value.(type) {
	case string:
		for _, m := range staticAssetRefPattern.FindAllStringSubmatch(v, -1) {
			seen[m[1]] = true
		}
	case map[string]interface{}:
		for _, item := range v {
			scanValueForAssetRefs(item, seen)
		}
	case []interface{}:
		for _, item := range v {
			scanValueForAssetRefs(item, seen)
		}
	}
}

// ExpandStagedTree dựng lại subtree từ clipboard thành các CourseBlock mới.
// Mọi block được cấp ID mới; chỉ block root mang copiedFromBlockId trỏ về block nguồn;
// sourceLibraryBlockId giữ nguyên trên mọi block. Root nhận rootPosition (append vào
// cuối sibling đích), các con được đánh position 0..n-1 theo thứ tự staged.
// Kết quả theo thứ tự pre-order, root ở đầu.
func ExpandStagedTree(staged clipboardmodels.StagedBlock, courseID primitive.ObjectID, parentID *primitive.ObjectID, orgID primitive.ObjectID, rootPosition int, sourceBlockID primitive.ObjectID) []contentmodels.CourseBlock {
	var result []contentmodels.CourseBlock
	expandStagedNode(staged, courseID, parentID, orgID, rootPosition, &sourceBlockID, &result)
	return result
}

func expandStagedNode(staged clipboardmodels.StagedBlock, courseID primitive.ObjectID, parentID *primitive.ObjectID, orgID primitive.ObjectID, position int, copiedFrom *primitive.ObjectID, acc *[]contentmodels.CourseBlock) {
	block := contentmodels.CourseBlock{
		ID:                   primitive.NewObjectID(),
		CourseID:             courseID,
		ParentID:             parentID,
		Position:             position,
		BlockType:            staged.BlockType,
		DisplayName:          staged.DisplayName,
		Definition:           staged.Definition,
		CopiedFromBlockID:    copiedFrom,
		SourceLibraryBlockID: staged.SourceLibraryBlockID,
		OwnerOrganizationID:  orgID,
	}
	*acc = append(*acc, block)
	for i, child := range staged.Children {
		// Descendant không mang provenance — chỉ root của subtree paste
		expandStagedNode(child, courseID, &block.ID, orgID, i, nil, acc)
	}
}

// Các quyết định khi copy một asset từ manifest sang khóa học đích.
const (
	AssetActionCopy     = "copy"     // Đích chưa có asset cùng tên → copy sang
	AssetActionSkip     = "skip"     // Đích đã có asset cùng tên, cùng hash → bỏ qua êm
	AssetActionConflict = "conflict" // Đích có asset cùng tên nhưng khác hash → giữ nguyên đích, báo conflict
)

// DecideAssetAction quyết định xử lý một asset khi paste.
// existing là asset cùng tên đã có ở khóa học đích (nil nếu chưa có).
func DecideAssetAction(existing *contentmodels.StaticAsset, sourceHash string) string {
	if existing == nil {
		return AssetActionCopy
	}
	if existing.ContentHash == sourceHash {
		return AssetActionSkip
	}
	return AssetActionConflict
}

// AssetCopyReport phân loại kết quả copy asset khi paste.
// Mỗi asset trong manifest rơi vào đúng một nhóm; asset trùng tên trùng hash
// được bỏ qua êm, không xuất hiện trong report.
type AssetCopyReport struct {
	New         []string `json:"new"`         // Đã copy sang khóa học đích
	Conflicting []string `json:"conflicting"` // Trùng tên khác hash — đích giữ nguyên
	Errored     []string `json:"errored"`     // Lỗi đọc/ghi storage
}

// NewAssetCopyReport tạo report rỗng với các slice non-nil để JSON luôn ra mảng.
func NewAssetCopyReport() *AssetCopyReport {
	return &AssetCopyReport{
		New:         []string{},
		Conflicting: []string{},
		Errored:     []string{},
	}
}
