package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/whiskers-launcher/companion/codec"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/schema"
)

// WriteFileAtomic writes data to a temporary file in the target directory,
// flushes it to disk and renames it over path. Readers observe either the
// previous content or the complete new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteRecord encodes v as MessagePack and writes it atomically to path.
func WriteRecord(path string, v interface{}) error {
	data, err := codec.EncodeBinary(v)
	if err != nil {
		return errors.ProtocolEncode(filepath.Base(path), err)
	}
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return errors.StoreWrite(filepath.Base(path), err).WithDetail("path", path)
	}
	return nil
}

// ReadRecord decodes the MessagePack record at path into v. Malformed bytes
// are reported as a protocol decode error.
func ReadRecord(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.StoreRead(filepath.Base(path), err).WithDetail("path", path)
	}
	if err := codec.DecodeBinary(data, v); err != nil {
		return errors.ProtocolDecode(filepath.Base(path), err).WithDetail("path", path)
	}
	return nil
}

// Exchange locates the transient single-use records passed between the host
// and an extension. Every record is overwritten on each interaction.
type Exchange struct {
	RequestPath      string
	ResponsePath     string
	FormRequestPath  string
	FormResponsePath string
}

// DefaultExchange returns the exchange at the standard locations.
func DefaultExchange() Exchange {
	return Exchange{
		RequestPath:      paths.ExtensionRequestPath(),
		ResponsePath:     paths.ExtensionResponsePath(),
		FormRequestPath:  paths.FormRequestPath(),
		FormResponsePath: paths.FormResponsePath(),
	}
}

// ExchangeIn returns an exchange whose files all live in dir.
func ExchangeIn(dir string) Exchange {
	return Exchange{
		RequestPath:      filepath.Join(dir, filepath.Base(paths.ExtensionRequestPath())),
		ResponsePath:     filepath.Join(dir, filepath.Base(paths.ExtensionResponsePath())),
		FormRequestPath:  filepath.Join(dir, filepath.Base(paths.FormRequestPath())),
		FormResponsePath: filepath.Join(dir, filepath.Base(paths.FormResponsePath())),
	}
}

func (e Exchange) WriteRequest(req schema.ExtensionRequest) error {
	return WriteRecord(e.RequestPath, req)
}

func (e Exchange) ReadRequest() (schema.ExtensionRequest, error) {
	var req schema.ExtensionRequest
	err := ReadRecord(e.RequestPath, &req)
	return req, err
}

// WriteFormRequest stores the form the host is about to display.
func (e Exchange) WriteFormRequest(form schema.OpenFormAction) error {
	return WriteRecord(e.FormRequestPath, form)
}

func (e Exchange) ReadFormRequest() (schema.OpenFormAction, error) {
	var form schema.OpenFormAction
	err := ReadRecord(e.FormRequestPath, &form)
	return form, err
}

func (e Exchange) WriteFormResponse(resp schema.FormResponse) error {
	return WriteRecord(e.FormResponsePath, resp)
}

func (e Exchange) ReadFormResponse() (schema.FormResponse, error) {
	var resp schema.FormResponse
	err := ReadRecord(e.FormResponsePath, &resp)
	return resp, err
}

// ClearResponse removes a stale response so it cannot be mistaken for the
// answer to the next request.
func (e Exchange) ClearResponse() error {
	if err := os.Remove(e.ResponsePath); err != nil && !os.IsNotExist(err) {
		return errors.StoreWrite(filepath.Base(e.ResponsePath), err)
	}
	return nil
}
