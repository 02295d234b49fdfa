package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Bucket names for the persisted snapshot file.
var (
	bucketChunks  = []byte("chunks")
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")
)

var keyInfo = []byte("info")

// snapshotInfo is the persisted snapshot header.
type snapshotInfo struct {
	Count      int    `json:"count"`
	Dimensions int    `json:"dimensions"`
	Model      string `json:"model"`
}

// persistedChunk is the stored chunk reference.
type persistedChunk struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Content    string         `json:"content"`
	Position   int            `json:"position"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Save persists the current snapshot to a bbolt file at path, replacing
// any previous contents. Record order is preserved so a loaded snapshot
// ranks ties identically.
func (idx *Index) Save(path string) error {
	snap := idx.current.Load()

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return fmt.Errorf("open index file: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketChunks, bucketVectors, bucketMeta} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
		}

		chunks, err := tx.CreateBucket(bucketChunks)
		if err != nil {
			return err
		}
		vectors, err := tx.CreateBucket(bucketVectors)
		if err != nil {
			return err
		}
		meta, err := tx.CreateBucket(bucketMeta)
		if err != nil {
			return err
		}

		for i, rec := range snap.records {
			key := seqKey(uint64(i))

			chunkJSON, err := json.Marshal(persistedChunk{
				ID:         rec.chunk.ID,
				DocumentID: rec.chunk.DocumentID,
				Content:    rec.chunk.Content,
				Position:   rec.chunk.Position,
				Metadata:   rec.chunk.Metadata,
			})
			if err != nil {
				return fmt.Errorf("marshal chunk %s: %w", rec.chunk.ID, err)
			}
			if err := chunks.Put(key, chunkJSON); err != nil {
				return err
			}
			if err := vectors.Put(key, float32SliceToBytes(rec.vector)); err != nil {
				return err
			}
		}

		infoJSON, err := json.Marshal(snapshotInfo{
			Count:      len(snap.records),
			Dimensions: snap.dimensions,
			Model:      idx.embedder.ModelName(),
		})
		if err != nil {
			return err
		}
		return meta.Put(keyInfo, infoJSON)
	})
	if err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	logger.Debug("Index: saved %d records to %s", len(snap.records), path)
	return nil
}

// Load replaces the current snapshot with one persisted by Save. It
// returns false without error when no file exists at path, and an error
// when the file was written by a different embedding model (the vectors
// would not be comparable; the caller should rebuild instead).
func (idx *Index) Load(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return false, fmt.Errorf("open index file: %w", err)
	}
	defer db.Close()

	var records []record
	var info snapshotInfo

	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		chunks := tx.Bucket(bucketChunks)
		vectors := tx.Bucket(bucketVectors)
		if meta == nil || chunks == nil || vectors == nil {
			return fmt.Errorf("malformed index file: missing buckets")
		}

		if err := json.Unmarshal(meta.Get(keyInfo), &info); err != nil {
			return fmt.Errorf("read snapshot info: %w", err)
		}
		if info.Model != idx.embedder.ModelName() {
			return fmt.Errorf("index built with model %q, current model is %q", info.Model, idx.embedder.ModelName())
		}

		records = make([]record, 0, info.Count)
		return chunks.ForEach(func(key, chunkJSON []byte) error {
			var pc persistedChunk
			if err := json.Unmarshal(chunkJSON, &pc); err != nil {
				return fmt.Errorf("unmarshal chunk: %w", err)
			}
			records = append(records, record{
				chunk: domain.Chunk{
					ID:         pc.ID,
					DocumentID: pc.DocumentID,
					Content:    pc.Content,
					Position:   pc.Position,
					Metadata:   pc.Metadata,
				},
				vector: bytesToFloat32Slice(vectors.Get(key)),
			})
			return nil
		})
	})
	if err != nil {
		return false, fmt.Errorf("load index: %w", err)
	}

	idx.publish.Lock()
	idx.current.Store(&snapshot{records: records, dimensions: info.Dimensions})
	idx.publish.Unlock()

	logger.Info("Index: loaded %d records from %s", len(records), path)
	return true, nil
}

// seqKey encodes an insertion sequence number as a sortable key.
func seqKey(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return buf[:]
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
