package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// The vector file is NPY version 1.0: the NumPy binary array format, dtype
// little-endian float32, C order, shape [N, D]. This is byte-for-byte what
// numpy.save writes for a 2-D float32 array.

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescrRe   = regexp.MustCompile(`'descr':\s*'([^']+)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// writeNPY writes vectors as a [len(vectors), dim] float32 array. Every row
// must have exactly dim values.
func writeNPY(path string, vectors [][]float32, dim int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", len(vectors), dim)
	// Total header size (magic + version + length field + dict) is padded
	// with spaces to a multiple of 64 and terminated by a newline.
	unpadded := len(npyMagic) + 2 + 2 + len(header) + 1
	pad := (64 - unpadded%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	row := make([]byte, dim*4)
	for _, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("vector length %d does not match dimension %d", len(vec), dim)
		}
		for i, v := range vec {
			binary.LittleEndian.PutUint32(row[i*4:], math.Float32bits(v))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// readNPY reads a 2-D little-endian float32 NPY file and returns its rows
// and the row dimension.
func readNPY(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	magic := make([]byte, len(npyMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, 0, fmt.Errorf("reading npy magic: %w", err)
	}
	if string(magic) != string(npyMagic) {
		return nil, 0, fmt.Errorf("%s is not an npy file", path)
	}
	version := make([]byte, 2)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, 0, err
	}
	if version[0] != 1 {
		return nil, 0, fmt.Errorf("unsupported npy version %d.%d", version[0], version[1])
	}
	var headerLen uint16
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, 0, err
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, 0, fmt.Errorf("reading npy header: %w", err)
	}
	header := string(headerBytes)

	m := npyDescrRe.FindStringSubmatch(header)
	if m == nil || m[1] != "<f4" {
		return nil, 0, fmt.Errorf("unsupported npy dtype in %s (want '<f4')", path)
	}
	if m := npyFortranRe.FindStringSubmatch(header); m == nil || m[1] != "False" {
		return nil, 0, fmt.Errorf("fortran-order npy arrays are not supported")
	}
	m = npyShapeRe.FindStringSubmatch(header)
	if m == nil {
		return nil, 0, fmt.Errorf("missing shape in npy header of %s", path)
	}
	dims := strings.Split(m[1], ",")
	var shape []int
	for _, d := range dims {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		n, err := strconv.Atoi(d)
		if err != nil {
			return nil, 0, fmt.Errorf("bad shape in npy header of %s: %q", path, m[1])
		}
		shape = append(shape, n)
	}
	if len(shape) != 2 {
		return nil, 0, fmt.Errorf("expected a 2-D array in %s, got shape %v", path, shape)
	}
	rows, dim := shape[0], shape[1]
	if rows < 0 || dim < 0 {
		return nil, 0, fmt.Errorf("bad shape in npy header of %s: %v", path, shape)
	}

	vectors := make([][]float32, rows)
	buf := make([]byte, dim*4)
	for i := 0; i < rows; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, 0, fmt.Errorf("truncated npy data in %s at row %d: %w", path, i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4:]))
		}
		vectors[i] = vec
	}
	return vectors, dim, nil
}
