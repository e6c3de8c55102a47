package services

import (
	"context"
	"log"

	"inspection-app/storage"
)

type uploadedPhoto struct {
	URL       string
	ObjectKey string
	Filename  string
}

// uploadPhotos mengupload file satu per satu. Kalau ada yang gagal,
// blob yang sudah terupload di submission ini dihapus lagi (best-effort)
// dan operasi gagal tanpa menyentuh database.
func uploadPhotos(ctx context.Context, blobs storage.BlobStore, prefix string, files []PhotoFile) ([]uploadedPhoto, error) {
	uploaded := make([]uploadedPhoto, 0, len(files))

	for _, file := range files {
		objectKey := storage.GenerateObjectKey(prefix, file.Filename)
		url, err := blobs.Put(ctx, objectKey, file.Reader, file.Size, file.ContentType)
		if err != nil {
			rollbackUploads(ctx, blobs, uploaded)
			return nil, &PhotoUploadError{Filename: file.Filename, Err: err}
		}
		uploaded = append(uploaded, uploadedPhoto{
			URL:       url,
			ObjectKey: objectKey,
			Filename:  file.Filename,
		})
	}

	return uploaded, nil
}

func rollbackUploads(ctx context.Context, blobs storage.BlobStore, uploaded []uploadedPhoto) {
	if len(uploaded) == 0 {
		return
	}
	keys := make([]string, 0, len(uploaded))
	for _, u := range uploaded {
		keys = append(keys, u.ObjectKey)
	}
	if err := blobs.Remove(ctx, keys); err != nil {
		log.Println("Warning: failed to rollback uploaded photos:", err)
	}
}

// removeBlobs menghapus blob di luar transaksi database.
// Gagal hapus hanya di-log, tidak membatalkan operasi metadata.
func removeBlobs(ctx context.Context, blobs storage.BlobStore, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := blobs.Remove(ctx, keys); err != nil {
		log.Println("Warning: failed to remove photo blobs:", err)
	}
}
