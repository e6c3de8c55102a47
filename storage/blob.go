package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// BlobStore adalah kontrak object storage untuk foto inspeksi.
// Put mengembalikan URL publik, Remove menghapus berdasarkan object key.
type BlobStore interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectKeys []string) error
}

// GenerateObjectKey membuat nama object yang unik:
// path tanggal + timestamp + suffix acak + ekstensi file asli.
func GenerateObjectKey(prefix, filename string) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("%s/%s/%d_%s%s",
		prefix,
		time.Now().Format("2006/01/02"),
		time.Now().UnixNano(),
		hex.EncodeToString(suffix),
		filepath.Ext(filename),
	)
}
