package scene

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// NewPointCloud returns an unorganized x, y, z float cloud holding vs.
func NewPointCloud(vs []mat.Vec3) (*pc.PointCloud, error) {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z"},
			Size:    []int{4, 4, 4},
			Type:    []string{"F", "F", "F"},
			Count:   []int{1, 1, 1},
			Width:   len(vs),
			Height:  1,
		},
		Points: len(vs),
	}
	pp.Data = make([]byte, len(vs)*pp.Stride())
	if len(vs) == 0 {
		return pp, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	for _, v := range vs {
		it.SetVec3(v)
		it.Incr()
	}
	return pp, nil
}
