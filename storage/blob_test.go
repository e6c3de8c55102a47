package storage

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateObjectKey(t *testing.T) {
	key := GenerateObjectKey("security", "foto pintu.JPG")

	if !strings.HasPrefix(key, "security/") {
		t.Errorf("object key harus diawali prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".JPG") {
		t.Errorf("ekstensi file asli harus dipertahankan: %s", key)
	}
	datePath := time.Now().Format("2006/01/02")
	if !strings.Contains(key, datePath) {
		t.Errorf("object key harus mengandung path tanggal %s: %s", datePath, key)
	}

	other := GenerateObjectKey("security", "foto pintu.JPG")
	if key == other {
		t.Errorf("dua key untuk file yang sama harus unik: %s", key)
	}
}
