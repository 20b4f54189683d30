// Package utility - Test ràng buộc phân cấp cây block nội dung.
package utility

import (
	"testing"

	contentmodels "meta_learning/internal/api/content/models"
)

func TestGetBlockLevel(t *testing.T) {
	cases := map[string]int{
		contentmodels.BlockTypeChapter:    1,
		contentmodels.BlockTypeSequential: 2,
		contentmodels.BlockTypeVertical:   3,
		contentmodels.BlockTypeHTML:       4,
		contentmodels.BlockTypeVideo:      4,
		contentmodels.BlockTypeProblem:    4,
		"unknown":                         0,
	}
	for blockType, want := range cases {
		if got := GetBlockLevel(blockType); got != want {
			t.Errorf("GetBlockLevel(%s): muốn %d, có %d", blockType, want, got)
		}
	}
}

func TestIsLeafBlockType(t *testing.T) {
	if !IsLeafBlockType(contentmodels.BlockTypeHTML) {
		t.Error("html phải là leaf")
	}
	if IsLeafBlockType(contentmodels.BlockTypeVertical) {
		t.Error("vertical không phải leaf")
	}
}

func TestValidateBlockHierarchy_ChapterLaRoot(t *testing.T) {
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeChapter, "", false); err != nil {
		t.Errorf("Chapter không parent phải hợp lệ: %v", err)
	}
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeChapter, contentmodels.BlockTypeChapter, true); err == nil {
		t.Error("Chapter có parent phải bị từ chối")
	}
}

func TestValidateBlockHierarchy_ParentDungLevel(t *testing.T) {
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeSequential, contentmodels.BlockTypeChapter, true); err != nil {
		t.Errorf("Sequential dưới chapter phải hợp lệ: %v", err)
	}
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeHTML, contentmodels.BlockTypeVertical, true); err != nil {
		t.Errorf("HTML dưới vertical phải hợp lệ: %v", err)
	}
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeHTML, contentmodels.BlockTypeSequential, true); err == nil {
		t.Error("HTML dưới sequential phải bị từ chối (sai level)")
	}
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeSequential, "", false); err == nil {
		t.Error("Sequential không parent phải bị từ chối")
	}
}

func TestValidateBlockHierarchy_ParentKhongTonTai(t *testing.T) {
	if err := ValidateBlockHierarchy(contentmodels.BlockTypeVertical, contentmodels.BlockTypeSequential, false); err == nil {
		t.Error("Parent không tồn tại phải bị từ chối")
	}
}

func TestValidateBlockHierarchy_TypeKhongHopLe(t *testing.T) {
	if err := ValidateBlockHierarchy("banner", "", false); err == nil {
		t.Error("Block type không hợp lệ phải bị từ chối")
	}
}
