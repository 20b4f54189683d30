package taggingsvc

import "testing"

func TestLanguageTagCandidates_CodeKhongResolveFallbackVeDefault(t *testing.T) {
	got := languageTagCandidates("11", "pt")
	if len(got) != 2 {
		t.Fatalf("Số candidate sai: muốn 2, có %d (%v)", len(got), got)
	}
	if got[0] != "11" {
		t.Errorf("Candidate đầu tiên phải là code của khóa học: muốn 11, có %s", got[0])
	}
	if got[1] != "pt" {
		t.Errorf("Candidate thứ hai phải là code mặc định: muốn pt, có %s", got[1])
	}
}

func TestLanguageTagCandidates_CodeRongChiThuDefault(t *testing.T) {
	got := languageTagCandidates("", "en")
	if len(got) != 1 || got[0] != "en" {
		t.Errorf("Candidate sai: muốn [en], có %v", got)
	}
}

func TestLanguageTagCandidates_TrungDefaultChiThuMotLan(t *testing.T) {
	got := languageTagCandidates("en", "en")
	if len(got) != 1 || got[0] != "en" {
		t.Errorf("Candidate sai: muốn [en], có %v", got)
	}
}

func TestLanguageTagCandidates_CaHaiRongKhongThuGiCa(t *testing.T) {
	got := languageTagCandidates("", "")
	if len(got) != 0 {
		t.Errorf("Không có code nào thì không được thử: có %v", got)
	}
}
