package rendition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_DownloadURL_DefaultTemplate(t *testing.T) {
	b := NewBuilder("", "")

	assert.Equal(t, "/files/img-1/download", b.DownloadURL("img-1"))
}

func TestBuilder_DownloadURL_WithBase(t *testing.T) {
	b := NewBuilder("https://records.example.com/", "")

	assert.Equal(t, "https://records.example.com/files/img-1/download", b.DownloadURL("img-1"))
}

func TestBuilder_DownloadURL_CustomTemplate(t *testing.T) {
	b := NewBuilder("https://records.example.com", "/renditions/ORIGINAL?versionId={id}")

	assert.Equal(t,
		"https://records.example.com/renditions/ORIGINAL?versionId=img-1",
		b.DownloadURL("img-1"))
}

func TestBuilder_DownloadURL_EscapesID(t *testing.T) {
	b := NewBuilder("", "")

	assert.Equal(t, "/files/a%2Fb/download", b.DownloadURL("a/b"))
}
