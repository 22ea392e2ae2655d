package valhalla

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/overture-tools/valhallaconv/pkg/util"
)

const (
	WaysFileName     = "ways.bin"
	WayNodesFileName = "way_nodes.bin"
)

// WriteGraph serializes the edges into ways.bin and way_nodes.bin under
// outputDir, in production order. Each file is written to a temporary path and
// renamed into place so a failed run never leaves partial output behind.
func WriteGraph(outputDir string, edges []DirectedEdge) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return util.WrapErrorf(err, util.ErrIoFailure, "create output dir %s", outputDir)
	}

	err := writeRecords(filepath.Join(outputDir, WaysFileName), func(w *bufio.Writer) error {
		buf := make([]byte, WayRecordSize)
		for i := range edges {
			EncodeWay(buf, &edges[i])
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeRecords(filepath.Join(outputDir, WayNodesFileName), func(w *bufio.Writer) error {
		buf := make([]byte, WayNodeRecordSize)
		for wayIndex := range edges {
			for pos, v := range edges[wayIndex].Nodes {
				EncodeWayNode(buf, v, uint32(wayIndex), uint32(pos))
				if _, err := w.Write(buf); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeRecords(path string, encode func(w *bufio.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return util.WrapErrorf(err, util.ErrIoFailure, "create %s", tmp)
	}

	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return util.WrapErrorf(err, util.ErrIoFailure, "write %s", path)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return util.WrapErrorf(err, util.ErrIoFailure, "flush %s", path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return util.WrapErrorf(err, util.ErrIoFailure, "sync %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return util.WrapErrorf(err, util.ErrIoFailure, "close %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return util.WrapErrorf(err, util.ErrIoFailure, "rename %s", path)
	}
	return nil
}
