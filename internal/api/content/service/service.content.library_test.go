package contentsvc

import (
	"testing"

	contentmodels "meta_learning/internal/api/content/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func libBlock(id primitive.ObjectID, name string) contentmodels.LibraryBlock {
	return contentmodels.LibraryBlock{ID: id, BlockType: contentmodels.BlockTypeHTML, DisplayName: name}
}

func courseBlockFrom(sourceID primitive.ObjectID, parentID *primitive.ObjectID) contentmodels.CourseBlock {
	src := sourceID
	return contentmodels.CourseBlock{
		ID:                   primitive.NewObjectID(),
		ParentID:             parentID,
		SourceLibraryBlockID: &src,
	}
}

func TestDiffLibraryBlocks_BlockDaKhopGiuNguyenIDCourseBlock(t *testing.T) {
	libA := libBlock(primitive.NewObjectID(), "A")
	libB := libBlock(primitive.NewObjectID(), "B")
	parentID := primitive.NewObjectID()

	cbA := courseBlockFrom(libA.ID, &parentID)
	cbB := courseBlockFrom(libB.ID, &parentID)

	diff := DiffLibraryBlocks(
		[]contentmodels.LibraryBlock{libA, libB},
		[]contentmodels.CourseBlock{cbA, cbB},
	)

	if len(diff.Matched) != 2 {
		t.Fatalf("Số block khớp sai: muốn 2, có %d", len(diff.Matched))
	}
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Errorf("Không có gì để thêm/xóa: added=%d, removed=%d", len(diff.Added), len(diff.Removed))
	}
	for _, pair := range diff.Matched {
		var muon primitive.ObjectID
		switch pair.Library.ID {
		case libA.ID:
			muon = cbA.ID
		case libB.ID:
			muon = cbB.ID
		default:
			t.Fatalf("Block thư viện lạ trong matched: %s", pair.Library.ID.Hex())
		}
		if pair.Course.ID != muon {
			t.Errorf("Re-sync phải giữ nguyên ID course block: muốn %s, có %s", muon.Hex(), pair.Course.ID.Hex())
		}
	}
}

func TestDiffLibraryBlocks_PhanLoaiThemVaXoa(t *testing.T) {
	libA := libBlock(primitive.NewObjectID(), "A")
	libC := libBlock(primitive.NewObjectID(), "C") // mới, chưa có trong khóa học
	parentID := primitive.NewObjectID()

	cbA := courseBlockFrom(libA.ID, &parentID)
	cbB := courseBlockFrom(primitive.NewObjectID(), &parentID) // nguồn đã biến mất khỏi thư viện

	diff := DiffLibraryBlocks(
		[]contentmodels.LibraryBlock{libA, libC},
		[]contentmodels.CourseBlock{cbA, cbB},
	)

	if len(diff.Matched) != 1 || diff.Matched[0].Course.ID != cbA.ID {
		t.Errorf("Matched sai: muốn đúng 1 block (cbA), có %d", len(diff.Matched))
	}
	if len(diff.Added) != 1 || diff.Added[0].ID != libC.ID {
		t.Errorf("Added sai: muốn đúng 1 block (libC), có %d", len(diff.Added))
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != cbB.ID {
		t.Errorf("Removed sai: muốn đúng 1 block (cbB), có %d", len(diff.Removed))
	}
}

func TestDiffLibraryBlocks_BoQuaBlockKhongCoNguonThuVien(t *testing.T) {
	libA := libBlock(primitive.NewObjectID(), "A")
	parentID := primitive.NewObjectID()

	cbA := courseBlockFrom(libA.ID, &parentID)
	cbTuTao := contentmodels.CourseBlock{ID: primitive.NewObjectID(), ParentID: &parentID} // block thường, không từ thư viện

	diff := DiffLibraryBlocks(
		[]contentmodels.LibraryBlock{libA},
		[]contentmodels.CourseBlock{cbA, cbTuTao},
	)

	if len(diff.Matched) != 1 {
		t.Errorf("Matched sai: muốn 1, có %d", len(diff.Matched))
	}
	if len(diff.Removed) != 0 {
		t.Errorf("Block không có nguồn thư viện không được xếp vào removed: có %d", len(diff.Removed))
	}
}
