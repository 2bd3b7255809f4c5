package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Collares", "collares"},
		{"Anillos de Plata", "anillos-de-plata"},
		{"Aretes  Dorados", "aretes-dorados"},
		{"Única", "unica"},
		{"Joyería & Accesorios", "joyeria-accesorios"},
		{"  --Promoción 2x1!  ", "promocion-2x1"},
		{"ñandú", "nandu"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
