package converter

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/concurrent"
	"github.com/overture-tools/valhallaconv/pkg/overture"
	"github.com/overture-tools/valhallaconv/pkg/util"
	"github.com/overture-tools/valhallaconv/pkg/valhalla"
)

const (
	SegmentFileName   = "segment.parquet"
	ConnectorFileName = "connector.parquet"

	progressInterval = 50000
)

// Stats summarizes one conversion run.
type Stats struct {
	Connectors      int
	Segments        int
	KeptSegments    int
	DroppedSegments int
	Edges           int
	WayNodes        int
	MintedNodes     uint64
	UnresolvedRefs  int
	TotalLengthKM   float64
}

type Converter struct {
	logger       *zap.Logger
	permissions  PermissionResolver
	workers      int
	driveOnRight bool
	names        util.IDMap
}

func New(logger *zap.Logger, permissions PermissionResolver, workers int, driveOnRight bool) *Converter {
	if workers < 1 {
		workers = 1
	}
	return &Converter{
		logger:       logger,
		permissions:  permissions,
		workers:      workers,
		driveOnRight: driveOnRight,
		names:        util.NewIDMap(),
	}
}

// Convert runs the whole pipeline: import both tables, derive per-segment
// access in parallel, then resolve node indices and build edges in a single
// sequential pass over segments in input order (index minting is stateful,
// the sequential pass keeps the assignment deterministic), and finally write
// the two binary files.
func (c *Converter) Convert(inputDir, outputDir string) (*Stats, error) {
	data, err := overture.ImportData(
		filepath.Join(inputDir, SegmentFileName),
		filepath.Join(inputDir, ConnectorFileName),
		c.logger,
	)
	if err != nil {
		return nil, err
	}

	accesses := c.deriveAccess(data.Segments)

	alloc := NewNodeAllocator(data.Connectors)
	edges := make([]valhalla.DirectedEdge, 0, 2*len(data.Segments))

	stats := &Stats{
		Connectors: len(data.Connectors),
		Segments:   len(data.Segments),
	}
	for i, seg := range data.Segments {
		if (i+1)%progressInterval == 0 {
			c.logger.Sugar().Infof("processing segment %d / %d", i+1, len(data.Segments))
		}

		if !accesses[i].Routable() {
			stats.DroppedSegments++
			continue
		}

		vertices := alloc.ResolveSegment(seg)
		forward, backward, err := BuildEdgePair(stats.KeptSegments, seg, vertices, accesses[i],
			c.names.GetID(seg.Name), c.driveOnRight)
		if err != nil {
			return nil, err
		}

		edges = append(edges, forward, backward)
		stats.KeptSegments++
		stats.WayNodes += 2 * len(vertices)
		stats.TotalLengthKM += seg.LengthKM()
	}
	stats.Edges = len(edges)
	stats.MintedNodes = alloc.MintedNodes()
	stats.UnresolvedRefs = alloc.UnresolvedRefs()

	if err := valhalla.WriteGraph(outputDir, edges); err != nil {
		return nil, err
	}

	c.logger.Sugar().Infof("wrote %d ways and %d way nodes to %s (%d segments kept, %d dropped, %d nodes minted, %.1f km)",
		stats.Edges, stats.WayNodes, outputDir,
		stats.KeptSegments, stats.DroppedSegments, stats.MintedNodes, stats.TotalLengthKM)
	if stats.UnresolvedRefs > 0 {
		c.logger.Sugar().Warnf("%d connector refs named ids absent from the connector table", stats.UnresolvedRefs)
	}
	return stats, nil
}

type accessJob struct {
	idx int
	seg *overture.Segment
}

type accessResult struct {
	idx    int
	access pkg.Access
}

// deriveAccess resolves permissions for all segments on the worker pool.
// Resolution is side-effect free per segment, results are reordered by
// segment position so the later sequential pass stays deterministic.
func (c *Converter) deriveAccess(segments []*overture.Segment) []pkg.Access {
	pool := concurrent.NewWorkerPool[accessJob, accessResult](c.workers, len(segments))
	pool.Start(func(job accessJob) accessResult {
		return accessResult{
			idx:    job.idx,
			access: c.permissions.Resolve(job.seg),
		}
	})
	for i, seg := range segments {
		pool.AddJob(accessJob{idx: i, seg: seg})
	}
	pool.Close()
	pool.Wait()

	out := make([]pkg.Access, len(segments))
	for res := range pool.CollectResults() {
		out[res.idx] = res.access
	}
	return out
}
