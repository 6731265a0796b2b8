package pdf

import (
	"encoding/base64"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logoOnce   sync.Once
	logoCached template.URL
)

// logoDataURI looks for a logo file next to the binary and embeds it as a
// data URI. Any read failure degrades to "no logo".
func logoDataURI() template.URL {
	logoOnce.Do(func() {
		candidates := []string{"logo.JPG", "logo.jpg", "logo.jpeg", "logo.png", "logo.webp", "logo.svg"}
		for _, name := range candidates {
			data, err := os.ReadFile(name)
			if err != nil {
				continue
			}
			uri := "data:" + logoMimeType(name) + ";base64," + base64.StdEncoding.EncodeToString(data)
			logoCached = template.URL(uri)
			return
		}
	})
	return logoCached
}

func logoMimeType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
