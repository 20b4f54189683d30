// Package clipboardsvc - Test các hàm thuần dựng/triển khai staged tree và phân loại asset khi paste.
package clipboardsvc

import (
	"testing"

	clipboardmodels "meta_learning/internal/api/clipboard/models"
	contentmodels "meta_learning/internal/api/content/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildStagedTree_GiuThuTuChildrenVaSourceLibraryID(t *testing.T) {
	libID := primitive.NewObjectID()
	root := contentmodels.CourseBlock{
		ID:          primitive.NewObjectID(),
		BlockType:   contentmodels.BlockTypeChapter,
		DisplayName: "Chương 1",
	}
	child1 := contentmodels.CourseBlock{
		ID:                   primitive.NewObjectID(),
		BlockType:            contentmodels.BlockTypeSequential,
		DisplayName:          "Bài 1",
		Position:             0,
		SourceLibraryBlockID: &libID,
	}
	child2 := contentmodels.CourseBlock{
		ID:          primitive.NewObjectID(),
		BlockType:   contentmodels.BlockTypeSequential,
		DisplayName: "Bài 2",
		Position:    1,
	}
	childrenOf := map[string][]contentmodels.CourseBlock{
		root.ID.Hex(): {child1, child2},
	}

	staged := BuildStagedTree(root, childrenOf)

	if staged.DisplayName != "Chương 1" {
		t.Errorf("DisplayName root sai: %s", staged.DisplayName)
	}
	if len(staged.Children) != 2 {
		t.Fatalf("Số children sai: muốn 2, có %d", len(staged.Children))
	}
	if staged.Children[0].DisplayName != "Bài 1" || staged.Children[1].DisplayName != "Bài 2" {
		t.Errorf("Thứ tự children không được giữ: %s, %s", staged.Children[0].DisplayName, staged.Children[1].DisplayName)
	}
	if staged.Children[0].SourceLibraryBlockID == nil || *staged.Children[0].SourceLibraryBlockID != libID {
		t.Error("sourceLibraryBlockId phải được giữ nguyên khi staging")
	}
	if staged.Children[1].SourceLibraryBlockID != nil {
		t.Error("Block không có nguồn gốc library không được nhận sourceLibraryBlockId")
	}
}

func TestExpandStagedTree_IDMoiVaProvenanceChiTrenRoot(t *testing.T) {
	libID := primitive.NewObjectID()
	staged := clipboardmodels.StagedBlock{
		BlockType:   contentmodels.BlockTypeChapter,
		DisplayName: "Chương copy",
		Children: []clipboardmodels.StagedBlock{
			{BlockType: contentmodels.BlockTypeSequential, DisplayName: "Bài A", SourceLibraryBlockID: &libID},
			{BlockType: contentmodels.BlockTypeSequential, DisplayName: "Bài B"},
		},
	}
	courseID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	sourceID := primitive.NewObjectID()

	blocks := ExpandStagedTree(staged, courseID, nil, orgID, 7, sourceID)

	if len(blocks) != 3 {
		t.Fatalf("Số block sai: muốn 3, có %d", len(blocks))
	}
	root := blocks[0]

	// Mọi block phải có ID mới, không trùng nhau
	seen := make(map[string]bool)
	for _, b := range blocks {
		if b.ID.IsZero() {
			t.Error("Block sau expand phải có ID mới, không được zero")
		}
		if seen[b.ID.Hex()] {
			t.Errorf("ID bị trùng: %s", b.ID.Hex())
		}
		seen[b.ID.Hex()] = true
		if b.CourseID != courseID {
			t.Error("courseId của block không đúng khóa học đích")
		}
		if b.OwnerOrganizationID != orgID {
			t.Error("ownerOrganizationId của block không đúng tổ chức đích")
		}
	}

	// Provenance chỉ trên root
	if root.CopiedFromBlockID == nil || *root.CopiedFromBlockID != sourceID {
		t.Error("Root phải mang copiedFromBlockId trỏ về block nguồn")
	}
	for _, b := range blocks[1:] {
		if b.CopiedFromBlockID != nil {
			t.Errorf("Descendant %s không được mang copiedFromBlockId", b.DisplayName)
		}
	}

	// Root append vào cuối sibling đích, children đánh lại position từ 0
	if root.Position != 7 {
		t.Errorf("Position root sai: muốn 7, có %d", root.Position)
	}
	if blocks[1].Position != 0 || blocks[2].Position != 1 {
		t.Errorf("Position children sai: %d, %d", blocks[1].Position, blocks[2].Position)
	}

	// Parent links trỏ về ID mới của root
	for _, b := range blocks[1:] {
		if b.ParentID == nil || *b.ParentID != root.ID {
			t.Errorf("parentId của %s phải trỏ về root mới", b.DisplayName)
		}
	}

	// sourceLibraryBlockId giữ nguyên trên mọi block
	if blocks[1].SourceLibraryBlockID == nil || *blocks[1].SourceLibraryBlockID != libID {
		t.Error("sourceLibraryBlockId phải ổn định qua paste")
	}
	if blocks[2].SourceLibraryBlockID != nil {
		t.Error("Block không có nguồn gốc library không được nhận sourceLibraryBlockId")
	}
}

func TestCollectAssetReferences_KhongTrungLapVaSapXep(t *testing.T) {
	staged := clipboardmodels.StagedBlock{
		Definition: map[string]interface{}{
			"html": `<img src="/static/zebra.png"> <a href="/static/alpha.pdf">tải</a>`,
		},
		Children: []clipboardmodels.StagedBlock{
			{Definition: map[string]interface{}{
				"items": []interface{}{
					"xem /static/zebra.png lần nữa",
					map[string]interface{}{"poster": "/static/mid.jpg"},
				},
			}},
		},
	}

	names := CollectAssetReferences(staged)

	want := []string{"alpha.pdf", "mid.jpg", "zebra.png"}
	if len(names) != len(want) {
		t.Fatalf("Số asset sai: muốn %d, có %d (%v)", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Asset[%d] sai: muốn %s, có %s", i, name, names[i])
		}
	}
}

func TestCollectAssetReferences_KhongCoThamChieu(t *testing.T) {
	staged := clipboardmodels.StagedBlock{
		Definition: map[string]interface{}{"html": "không có asset nào"},
	}
	names := CollectAssetReferences(staged)
	if len(names) != 0 {
		t.Errorf("Muốn danh sách rỗng, có %v", names)
	}
}

func TestDecideAssetAction(t *testing.T) {
	if got := DecideAssetAction(nil, "abc"); got != AssetActionCopy {
		t.Errorf("Đích chưa có asset: muốn copy, có %s", got)
	}
	existing := &contentmodels.StaticAsset{ContentHash: "abc"}
	if got := DecideAssetAction(existing, "abc"); got != AssetActionSkip {
		t.Errorf("Trùng tên trùng hash: muốn skip, có %s", got)
	}
	if got := DecideAssetAction(existing, "xyz"); got != AssetActionConflict {
		t.Errorf("Trùng tên khác hash: muốn conflict, có %s", got)
	}
}

func TestNewAssetCopyReport_SliceNonNil(t *testing.T) {
	report := NewAssetCopyReport()
	if report.New == nil || report.Conflicting == nil || report.Errored == nil {
		t.Error("Report rỗng phải có các slice non-nil để JSON ra mảng")
	}
	if len(report.New)+len(report.Conflicting)+len(report.Errored) != 0 {
		t.Error("Report mới tạo phải rỗng")
	}
}
