package statistic

import (
	json "github.com/goccy/go-json"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"mcstatus/internal/statistic/interfaces"
	"os"
	"sync"
	"time"
)

// FileManager reads and writes the small per-server state files.
type FileManager struct {
	compressor interfaces.CompressorInterface
	decoder    interfaces.CompressorInterface
	decoderMu  sync.Mutex
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// LoadOrDefault decodes fileName into a fresh T. A missing file yields the
// zero value and false. So does a file that fails to decompress or parse,
// after logging a warning, so that stale or corrupt state never fails a
// call. Only real read faults are returned as errors.
func LoadOrDefault[T any](f *FileManager, fileName string) (T, bool, error) {
	var zero T

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, &models.StorageError{Op: "read", Path: fileName, Err: err}
	}

	if isZstd(data) {
		data, err = f.zstdDecoder().Decompress(data)
		if err != nil {
			f.logger.Warnf(providers.TypeStorage, "Discarding undecompressable file %s: %s", fileName, err)
			return zero, false, nil
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		f.logger.Warnf(providers.TypeStorage, "Discarding corrupt file %s: %s", fileName, err)
		return zero, false, nil
	}
	return v, true, nil
}

// zstdDecoder returns a decoder for compressed files even when new files are
// written uncompressed, so toggling storage.compress keeps existing state.
func (f *FileManager) zstdDecoder() interfaces.CompressorInterface {
	if z, ok := f.compressor.(*ZstdCompression); ok {
		return z
	}
	f.decoderMu.Lock()
	defer f.decoderMu.Unlock()
	if f.decoder == nil {
		z, err := NewZstdCompressor()
		if err != nil {
			return f.compressor
		}
		f.decoder = z
	}
	return f.decoder
}

// Save serializes v and replaces fileName through a temp file and rename.
func (f *FileManager) Save(fileName string, v interface{}) error {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration(time.Since(start)) }()

	jsonData, err := json.Marshal(v)
	if err != nil {
		return &models.StorageError{Op: "encode", Path: fileName, Err: err}
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return &models.StorageError{Op: "compress", Path: fileName, Err: err}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return &models.StorageError{Op: "create", Path: tmpFile, Err: err}
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.StorageError{Op: "write", Path: tmpFile, Err: err}
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.StorageError{Op: "sync", Path: tmpFile, Err: err}
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return &models.StorageError{Op: "close", Path: tmpFile, Err: err}
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return &models.StorageError{Op: "rename", Path: fileName, Err: err}
	}
	return nil
}

// EnsureDir creates a server directory and its parents.
func (f *FileManager) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
	f.decoderMu.Lock()
	defer f.decoderMu.Unlock()
	if f.decoder != nil {
		f.decoder.Close()
	}
}
