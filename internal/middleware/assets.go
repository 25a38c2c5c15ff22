package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const assetCacheControl = "public, max-age=604800, stale-while-revalidate=86400"

// AssetsWithCache serves the files of fsys with week-long caching and
// content-hash ETags. Directory paths are not listed. Mount it behind
// http.StripPrefix.
func AssetsWithCache(fsys fs.FS) http.Handler {
	tags := hashAssets(fsys)
	files := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		tag, ok := tags[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", assetCacheControl)
		h.Set("Vary", "Accept-Encoding")
		h.Set("ETag", tag)
		if NotModified(r, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// NotModified reports whether the request's If-None-Match list names tag.
// Comparison is weak, so W/"x" and "x" match each other.
func NotModified(r *http.Request, tag string) bool {
	header := r.Header.Get("If-None-Match")
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// hashAssets maps each regular file in fsys to a weak ETag of its content.
func hashAssets(fsys fs.FS) map[string]string {
	tags := make(map[string]string)
	_ = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		f, err := fsys.Open(name)
		if err != nil {
			return nil
		}
		defer f.Close()
		sum := sha256.New()
		if _, err := io.Copy(sum, f); err == nil {
			tags[name] = `W/"` + hex.EncodeToString(sum.Sum(nil)[:16]) + `"`
		}
		return nil
	})
	return tags
}
