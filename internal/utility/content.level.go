package utility

import (
	"fmt"

	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
)

// BlockLevelMap ánh xạ block type sang level trong cây nội dung khóa học.
// Container: chapter (L1) → sequential (L2) → vertical (L3). Leaf (html, video, problem) là L4.
var BlockLevelMap = map[string]int{
	contentmodels.BlockTypeChapter:    1, // L1
	contentmodels.BlockTypeSequential: 2, // L2
	contentmodels.BlockTypeVertical:   3, // L3
	contentmodels.BlockTypeHTML:       4, // L4 (leaf)
	contentmodels.BlockTypeVideo:      4, // L4 (leaf)
	contentmodels.BlockTypeProblem:    4, // L4 (leaf)
}

// GetBlockLevel trả về level (1-4) của block type
// Trả về 0 nếu type không hợp lệ
func GetBlockLevel(blockType string) int {
	if level, exists := BlockLevelMap[blockType]; exists {
		return level
	}
	return 0
}

// IsLeafBlockType kiểm tra block type có phải là leaf (html, video, problem) không
func IsLeafBlockType(blockType string) bool {
	return GetBlockLevel(blockType) == 4
}

// GetExpectedParentType trả về block type của parent mong đợi cho một container type.
// Leaf block (L4) có nhiều type cùng level nên chỉ trả về vertical.
// Trả về "" nếu là root level (chapter) hoặc type không hợp lệ.
func GetExpectedParentType(blockType string) string {
	switch GetBlockLevel(blockType) {
	case 2:
		return contentmodels.BlockTypeChapter
	case 3:
		return contentmodels.BlockTypeSequential
	case 4:
		return contentmodels.BlockTypeVertical
	default:
		return ""
	}
}

// ValidateBlockHierarchy kiểm tra ràng buộc phân cấp của cây block:
// 1. Block type phải hợp lệ (có trong BlockLevelMap)
// 2. Chapter (L1) là root, không được có parent
// 3. Các level còn lại PHẢI có parent với level đúng (level = currentLevel - 1)
//
// Tham số:
//   - blockType: Type của block cần validate
//   - parentType: Type của parent block (có thể là "" nếu không có parent)
//   - parentExists: true nếu parent tồn tại trong database
//
// Trả về:
//   - error: Lỗi nếu vi phạm ràng buộc, nil nếu hợp lệ
func ValidateBlockHierarchy(blockType string, parentType string, parentExists bool) error {
	// 1. Kiểm tra block type hợp lệ
	currentLevel := GetBlockLevel(blockType)
	if currentLevel == 0 {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Block type '%s' không hợp lệ. Các type hợp lệ: chapter, sequential, vertical, html, video, problem", blockType),
			common.StatusBadRequest,
			nil,
		)
	}

	// 2. Nếu là root level (L1 - chapter), không cần parent
	if currentLevel == 1 {
		if parentType != "" {
			return common.NewError(
				common.ErrCodeBusinessOperation,
				"Chapter (L1) là root level, không được có parent",
				common.StatusBadRequest,
				nil,
			)
		}
		return nil
	}

	// 3. Nếu không phải root level, PHẢI có parent
	if parentType == "" {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Block type '%s' (L%d) phải có parent block. Parent mong đợi: %s (L%d)",
				blockType, currentLevel,
				GetExpectedParentType(blockType), currentLevel-1),
			common.StatusBadRequest,
			nil,
		)
	}

	// 4. Kiểm tra parent type đúng level
	parentLevel := GetBlockLevel(parentType)
	if parentLevel != currentLevel-1 {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Parent type '%s' (L%d) không đúng level. Block type '%s' (L%d) cần parent là %s (L%d)",
				parentType, parentLevel,
				blockType, currentLevel,
				GetExpectedParentType(blockType), currentLevel-1),
			common.StatusBadRequest,
			nil,
		)
	}

	// 5. Kiểm tra parent phải tồn tại
	if !parentExists {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Parent block (type: %s, L%d) không tồn tại. Phải tạo parent trước khi tạo %s (L%d)",
				parentType, parentLevel,
				blockType, currentLevel),
			common.StatusBadRequest,
			nil,
		)
	}

	return nil
}
