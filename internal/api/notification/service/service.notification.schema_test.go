// Package notifsvc - Test schema tĩnh và overlay preference notification.
package notifsvc

import (
	"testing"

	notifmodels "meta_learning/internal/api/notification/models"
)

func TestDefaultPreferenceApps_CoDuCacApp(t *testing.T) {
	apps := DefaultPreferenceApps()
	for _, name := range []string{
		notifmodels.AppDiscussions,
		notifmodels.AppUpdates,
		notifmodels.AppGrading,
		notifmodels.AppEnrollments,
	} {
		app, ok := apps[name]
		if !ok {
			t.Fatalf("Thiếu app %s trong cấu hình mặc định", name)
		}
		if !app.Enabled {
			t.Errorf("App %s phải bật mặc định", name)
		}
	}
	// Giá trị default lấy từ schema
	if apps[notifmodels.AppDiscussions].Types["new_comment"][notifmodels.ChannelEmail] {
		t.Error("discussions/new_comment/email phải tắt mặc định")
	}
	if !apps[notifmodels.AppGrading].Types["grade_available"][notifmodels.ChannelWeb] {
		t.Error("grading/grade_available/web phải bật mặc định")
	}
}

func TestIsChannelEditable(t *testing.T) {
	if IsChannelEditable(notifmodels.AppDiscussions, "core", notifmodels.ChannelWeb) {
		t.Error("Ô non-editable phải trả về false")
	}
	if !IsChannelEditable(notifmodels.AppDiscussions, "core", notifmodels.ChannelEmail) {
		t.Error("Ô editable phải trả về true")
	}
	// Ô không tồn tại trong schema
	if IsChannelEditable("unknownApp", "core", notifmodels.ChannelWeb) {
		t.Error("App không tồn tại phải trả về false")
	}
	if IsChannelEditable(notifmodels.AppDiscussions, "unknownType", notifmodels.ChannelWeb) {
		t.Error("Type không tồn tại phải trả về false")
	}
	if IsChannelEditable(notifmodels.AppDiscussions, "core", "sms") {
		t.Error("Kênh không tồn tại phải trả về false")
	}
}

func TestOverlayPreferenceApps_GiaTriDaLuuPhuLenDefault(t *testing.T) {
	stored := map[string]notifmodels.AppPreference{
		notifmodels.AppDiscussions: {
			Enabled: false,
			Types: map[string]notifmodels.TypePreference{
				"new_comment": {notifmodels.ChannelEmail: true},
			},
		},
	}
	apps := OverlayPreferenceApps(stored)

	if apps[notifmodels.AppDiscussions].Enabled {
		t.Error("Enabled đã lưu phải phủ lên default")
	}
	if !apps[notifmodels.AppDiscussions].Types["new_comment"][notifmodels.ChannelEmail] {
		t.Error("Giá trị kênh editable đã lưu phải phủ lên default")
	}
	// App khác không đụng tới vẫn giữ default
	if !apps[notifmodels.AppUpdates].Enabled {
		t.Error("App không có trong document phải giữ default")
	}
}

func TestOverlayPreferenceApps_NonEditableLuonLayTuSchema(t *testing.T) {
	stored := map[string]notifmodels.AppPreference{
		notifmodels.AppDiscussions: {
			Enabled: true,
			Types: map[string]notifmodels.TypePreference{
				// core/web là non-editable — giá trị false đã lưu phải bị bỏ qua
				"core": {notifmodels.ChannelWeb: false},
			},
		},
	}
	apps := OverlayPreferenceApps(stored)
	if !apps[notifmodels.AppDiscussions].Types["core"][notifmodels.ChannelWeb] {
		t.Error("Ô non-editable phải luôn lấy giá trị từ schema, bỏ qua giá trị đã lưu")
	}
}

func TestOverlayPreferenceApps_BoQuaKeyKhongCoTrongSchema(t *testing.T) {
	stored := map[string]notifmodels.AppPreference{
		"legacyApp": {Enabled: true},
		notifmodels.AppDiscussions: {
			Enabled: true,
			Types: map[string]notifmodels.TypePreference{
				"legacyType": {notifmodels.ChannelWeb: true},
				"core":       {"sms": true},
			},
		},
	}
	apps := OverlayPreferenceApps(stored)

	if _, ok := apps["legacyApp"]; ok {
		t.Error("App không còn trong schema không được xuất hiện sau overlay")
	}
	if _, ok := apps[notifmodels.AppDiscussions].Types["legacyType"]; ok {
		t.Error("Type không còn trong schema không được xuất hiện sau overlay")
	}
	if _, ok := apps[notifmodels.AppDiscussions].Types["core"]["sms"]; ok {
		t.Error("Kênh không còn trong schema không được xuất hiện sau overlay")
	}
}

func TestChannelEnabledFor_AppTatThiMoiKenhTat(t *testing.T) {
	apps := DefaultPreferenceApps()
	app := apps[notifmodels.AppEnrollments]
	app.Enabled = false
	apps[notifmodels.AppEnrollments] = app

	if ChannelEnabledFor(apps, notifmodels.AppEnrollments, "enrolled", notifmodels.ChannelWeb) {
		t.Error("App tắt thì mọi kênh phải coi như tắt")
	}
	if ChannelEnabledFor(apps, "unknownApp", "enrolled", notifmodels.ChannelWeb) {
		t.Error("App không tồn tại phải coi như tắt")
	}
	if !ChannelEnabledFor(apps, notifmodels.AppGrading, "grade_available", notifmodels.ChannelEmail) {
		t.Error("Kênh bật trong app bật phải trả về true")
	}
}

func TestHasApp(t *testing.T) {
	if !HasApp(notifmodels.AppDiscussions) {
		t.Error("discussions phải có trong schema")
	}
	if HasApp("unknownApp") {
		t.Error("App lạ không được có trong schema")
	}
	if len(KnownApps()) != 4 {
		t.Errorf("Số app trong schema sai: muốn 4, có %d", len(KnownApps()))
	}
}
