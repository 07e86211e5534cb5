package reports

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		filename string
		want     Category
	}{
		{"xray.jpg", CategoryImage},
		{"scan.PNG", CategoryImage},
		{"photo.JPEG", CategoryImage},
		{"slide.tif", CategoryImage},
		{"slide.tiff", CategoryImage},
		{"pic.webp", CategoryImage},
		{"pic.gif", CategoryImage},
		{"pic.bmp", CategoryImage},
		{"labs.pdf", CategoryText},
		{"notes.txt", CategoryText},
		{"reportfile", CategoryText},
		{"archive.tar.gz", CategoryText},
		{"scan.dcm", CategoryText},
		{"brain.nii", CategoryText},
		{"trailing.", CategoryText},
		{"", CategoryText},
		{"7_a1b2c3d4_xray.JPG", CategoryImage},
	}
	for _, c := range cases {
		if got := Classify(c.filename); got != c.want {
			t.Errorf("Classify(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestReportCategory(t *testing.T) {
	r := Report{StoredFilename: "7_xray.jpg"}
	if r.Category() != CategoryImage {
		t.Fatalf("expected image category, got %q", r.Category())
	}
}
