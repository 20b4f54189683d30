package utility

import (
	"testing"

	notifmodels "meta_learning/internal/api/notification/models"
)

func TestToMap_ExtractFlattenTenKhoaHocTuContext(t *testing.T) {
	notif := notifmodels.Notification{
		Content: "Bạn đã ghi danh vào khóa học Go căn bản",
		Context: map[string]interface{}{"courseName": "Go căn bản", "mode": "audit"},
	}

	m, err := ToMap(notif)
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if m["courseName"] != "Go căn bản" {
		t.Errorf("courseName phải được flatten từ Context: muốn 'Go căn bản', có %v", m["courseName"])
	}
}

func TestToMap_ExtractContextRongBoQuaEm(t *testing.T) {
	notif := notifmodels.Notification{Content: "Chào mừng"}

	m, err := ToMap(notif)
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if _, ok := m["courseName"]; ok {
		t.Errorf("Không có Context thì không được sinh courseName: có %v", m["courseName"])
	}
}

func TestToMap_ExtractThieuKeyOptionalBoQuaEm(t *testing.T) {
	notif := notifmodels.Notification{
		Context: map[string]interface{}{"mode": "honor"},
	}

	m, err := ToMap(notif)
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if _, ok := m["courseName"]; ok {
		t.Errorf("Context thiếu courseName thì field optional phải bị bỏ qua: có %v", m["courseName"])
	}
}
