package overture

import (
	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/overture-tools/valhallaconv/pkg/util"
)

// row shapes for the two input tables. only the columns the converter consumes
// are declared, the parquet reader projects the rest away.

type connectorRow struct {
	ID       string `parquet:"id"`
	Geometry []byte `parquet:"geometry"`
}

type namesRow struct {
	Primary string `parquet:"primary,optional"`
}

type connectorRefRow struct {
	ConnectorID string  `parquet:"connector_id,optional"`
	At          float64 `parquet:"at,optional"`
}

type accessRestrictionRow struct {
	AccessType string `parquet:"access_type,optional"`
}

type speedValueRow struct {
	Value float64 `parquet:"value,optional"`
	Unit  string  `parquet:"unit,optional"`
}

type speedLimitRow struct {
	MaxSpeed *speedValueRow `parquet:"max_speed,optional"`
}

type segmentRow struct {
	ID                 string                 `parquet:"id"`
	Geometry           []byte                 `parquet:"geometry"`
	Class              *string                `parquet:"class,optional"`
	Surface            *string                `parquet:"surface,optional"`
	Names              *namesRow              `parquet:"names,optional"`
	Connectors         []connectorRefRow      `parquet:"connectors,list,optional"`
	AccessRestrictions []accessRestrictionRow `parquet:"access_restrictions,list,optional"`
	SpeedLimits        []speedLimitRow        `parquet:"speed_limits,list,optional"`
}

// ImportData materializes the connector and segment tables. The two files are
// read concurrently, all connectors are in memory before any segment vertex is
// resolved downstream. A segment row without decodable geometry or without a
// connectors list fails the whole run, naming file and row id.
func ImportData(segmentPath, connectorPath string, logger *zap.Logger) (*Data, error) {
	var (
		segRows  []segmentRow
		connRows []connectorRow
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		rows, err := parquet.ReadFile[connectorRow](connectorPath)
		if err != nil {
			return util.WrapErrorf(err, util.ErrIoFailure, "read connector table %s", connectorPath)
		}
		connRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := parquet.ReadFile[segmentRow](segmentPath)
		if err != nil {
			return util.WrapErrorf(err, util.ErrIoFailure, "read segment table %s", segmentPath)
		}
		segRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	connectors := make([]Connector, len(connRows))
	for i, row := range connRows {
		coord, err := DecodePoint(row.Geometry)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrMissingRequiredField,
				"connector %s in %s", row.ID, connectorPath)
		}
		connectors[i] = Connector{
			ID:         row.ID,
			Coordinate: coord,
		}
	}
	logger.Sugar().Infof("imported %d connectors from %s", len(connectors), connectorPath)

	segments := make([]*Segment, 0, len(segRows))
	for _, row := range segRows {
		seg, err := materializeSegment(row)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrMissingRequiredField,
				"segment %s in %s", row.ID, segmentPath)
		}
		segments = append(segments, seg)
	}
	logger.Sugar().Infof("imported %d segments from %s", len(segments), segmentPath)

	return &Data{
		Connectors: connectors,
		Segments:   segments,
	}, nil
}

func materializeSegment(row segmentRow) (*Segment, error) {
	if len(row.Geometry) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrMissingRequiredField, "no geometry column")
	}
	points, err := DecodeLineString(row.Geometry)
	if err != nil {
		return nil, err
	}

	if row.Connectors == nil {
		return nil, util.WrapErrorf(nil, util.ErrMissingRequiredField, "no connectors list")
	}
	refs := make([]ConnectorRef, len(row.Connectors))
	for i, ref := range row.Connectors {
		refs[i] = ConnectorRef{
			ConnectorID: ref.ConnectorID,
			At:          ref.At,
		}
	}

	seg := &Segment{
		ID:            row.ID,
		Points:        points,
		ConnectorRefs: refs,
	}
	if row.Names != nil {
		seg.Name = row.Names.Primary
	}
	if row.Class != nil {
		seg.Class = *row.Class
		seg.HasClass = true
	}
	if row.Surface != nil {
		seg.Surface = *row.Surface
	}
	for _, r := range row.AccessRestrictions {
		if r.AccessType == "" {
			continue
		}
		seg.AccessRestrictions = append(seg.AccessRestrictions, AccessRestriction{AccessType: r.AccessType})
	}
	for _, s := range row.SpeedLimits {
		if s.MaxSpeed == nil {
			continue
		}
		seg.SpeedLimits = append(seg.SpeedLimits, SpeedLimit{
			MaxSpeed: s.MaxSpeed.Value,
			Unit:     s.MaxSpeed.Unit,
		})
	}
	return seg, nil
}
