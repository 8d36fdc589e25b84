package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
)

const metadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteFile writes dict to path in SafeTensors format.
func WriteFile(path string, dict map[string]Tensor, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if err := Write(file, dict, metadata); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	return file.Close()
}

// Write encodes dict in SafeTensors format.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
//
// Tensors are written in alphabetical order by name.
func Write(w io.Writer, dict map[string]Tensor, metadata map[string]string) error {
	names := make([]string, 0, len(dict))
	for name := range dict {
		if err := validateName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(dict)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		t := dict[name]
		if elements(t.Shape) != len(t.Data) {
			return &ValidationError{
				Kind:    ErrShapeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("shape %v holds %d values, got %d", t.Shape, elements(t.Shape), len(t.Data)),
			}
		}

		shape := make([]int64, len(t.Shape))
		for i, dim := range t.Shape {
			shape[i] = int64(dim)
		}
		size := int64(len(t.Data) * 8)
		header[name] = SafeTensorHeader{
			DType:       "F64",
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	buf := make([]byte, 8)
	for _, name := range names {
		for _, v := range dict[name].Data {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			if _, err := w.Write(buf); err != nil {
				return errors.Wrapf(err, "failed to write tensor %s", name)
			}
		}
	}
	return nil
}

// ReadFile reads a SafeTensors file.
func ReadFile(path string) (map[string]Tensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()
	return Read(file)
}

// Read decodes a SafeTensors stream. The header is validated before any
// tensor data is interpreted.
func Read(r io.Reader) (map[string]Tensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header")
	}

	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, errors.Wrap(err, "failed to parse metadata")
		}
		delete(raw, metadataKey)
	}
	if len(raw) > MaxTensorCount {
		return nil, nil, &ValidationError{
			Kind:    ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(raw), MaxTensorCount),
		}
	}

	headers := make(map[string]SafeTensorHeader, len(raw))
	for name, msg := range raw {
		if err := validateName(name); err != nil {
			return nil, nil, err
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse header of tensor %s", name)
		}
		headers[name] = h
	}

	var data bytes.Buffer
	if _, err := data.ReadFrom(r); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := validateOffsets(headers, int64(data.Len())); err != nil {
		return nil, nil, err
	}

	dict := make(map[string]Tensor, len(headers))
	for name, h := range headers {
		t, err := decode(name, h, data.Bytes())
		if err != nil {
			return nil, nil, err
		}
		dict[name] = t
	}
	return dict, metadata, nil
}

func decode(name string, h SafeTensorHeader, data []byte) (Tensor, error) {
	chunk := data[h.DataOffsets[0]:h.DataOffsets[1]]
	var width int
	switch h.DType {
	case "F64":
		width = 8
	case "F32":
		width = 4
	default:
		return Tensor{}, &ValidationError{Kind: ErrUnsupportedDType, Tensor: name, Details: h.DType}
	}

	// n never exceeds the number of values the chunk can hold, so n*width
	// cannot overflow.
	limit := int64(len(chunk) / width)
	shape := make([]int, len(h.Shape))
	n := int64(1)
	for i, dim := range h.Shape {
		if dim < 0 {
			return Tensor{}, &ValidationError{Kind: ErrShapeMismatch, Tensor: name, Details: "negative dimension"}
		}
		if dim != 0 && n > limit/dim {
			return Tensor{}, &ValidationError{
				Kind:    ErrShapeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("shape %v exceeds %d data bytes", h.Shape, len(chunk)),
			}
		}
		n *= dim
		shape[i] = int(dim)
	}

	if int64(len(chunk)) != n*int64(width) {
		return Tensor{}, &ValidationError{
			Kind:    ErrShapeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("shape %v needs %d bytes, got %d", shape, n*int64(width), len(chunk)),
		}
	}

	values := make([]float64, n)
	for i := range values {
		if width == 8 {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk[i*8:]))
		} else {
			values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk[i*4:])))
		}
	}
	return Tensor{Shape: shape, Data: values}, nil
}

func validateName(name string) error {
	if name == "" || name == metadataKey {
		return &ValidationError{Kind: ErrInvalidTensorName, Tensor: name, Details: "reserved or empty name"}
	}
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Kind:    ErrInvalidTensorName,
			Details: fmt.Sprintf("name length %d exceeds %d", len(name), MaxTensorNameLen),
		}
	}
	return nil
}

// validateOffsets checks for overlapping tensor offsets and out-of-bounds
// access.
func validateOffsets(headers map[string]SafeTensorHeader, dataSize int64) error {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := headers[names[i]].DataOffsets, headers[names[j]].DataOffsets
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})

	var prev string
	var prevEnd int64
	for _, name := range names {
		start, end := headers[name].DataOffsets[0], headers[name].DataOffsets[1]
		if start < 0 || end < start || end > dataSize {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d) with %d data bytes", start, end, dataSize),
			}
		}
		if prev != "" && start < prevEnd {
			return &ValidationError{
				Kind:    ErrOffsetOverlap,
				Tensor:  prev,
				Tensor2: name,
				Details: fmt.Sprintf("%d < %d", start, prevEnd),
			}
		}
		prev, prevEnd = name, end
	}
	return nil
}
