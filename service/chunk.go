package service

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Chunk struct {
	Index       int
	FileName    string
	ContentType string
	Data        []byte
}

// SplitChunks slices data into consecutive pieces of at most chunkSize bytes.
// The chunks share the backing array of data.
func SplitChunks(data []byte, chunkSize int) [][]byte {
	if chunkSize <= 0 || len(data) <= chunkSize {
		return [][]byte{data}
	}

	chunks := make([][]byte, 0, (len(data)+chunkSize-1)/chunkSize)
	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))
		chunks = append(chunks, data[start:end:end])
	}
	return chunks
}

// BuildChunks splits an upload and names every piece after the original file.
func BuildChunks(fileName, contentType string, data []byte, chunkSize int) []Chunk {
	parts := SplitChunks(data, chunkSize)
	if len(parts) == 1 {
		return []Chunk{{Index: 0, FileName: fileName, ContentType: contentType, Data: parts[0]}}
	}

	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	chunks := make([]Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = Chunk{
			Index:       i,
			FileName:    fmt.Sprintf("%s_chunk_%03d%s", base, i, ext),
			ContentType: contentType,
			Data:        part,
		}
	}
	return chunks
}
