package normalize

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tây Hồ", "tay ho"},
		{"Đống Đa", "dong da"},
		{"Cầu Giấy", "cau giay"},
		{"Hoàn Kiếm", "hoan kiem"},
		{"CĂN HỘ STUDIO ĐẸP", "can ho studio dep"},
		{"phường Thụy Khuê", "phuong thuy khue"},
		{"ngõ 31 Xuân Diệu", "ngo 31 xuan dieu"},
		{"abc-123", "abc-123"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldDecomposedInput(t *testing.T) {
	// "Tây" written with a combining circumflex instead of the
	// precomposed â must fold to the same string.
	decomposed := "Tây"
	if got := Fold(decomposed); got != "tay" {
		t.Errorf("Fold(%q) = %q, want %q", decomposed, got, "tay")
	}
}

func TestContains(t *testing.T) {
	if !Contains("Căn hộ 2 ngủ Tây Hồ view hồ", "tay ho") {
		t.Errorf("expected diacritic-free query to match diacritic text")
	}
	if !Contains("tay ho", "Tây Hồ") {
		t.Errorf("expected diacritic query to match folded text")
	}
	if Contains("Ba Đình", "tay ho") {
		t.Errorf("unexpected match")
	}
}
