package stitch

// MaxCameras is the largest camera ring a Stitcher accepts.
const MaxCameras = 8

// DefaultOutStartAngle is the angle that maps to output column 0, so the
// output frame spans [-180, 180).
const DefaultOutStartAngle = -180.0

// RoundViewSlice describes the horizontal field of view of one camera and
// its native pixel size.
type RoundViewSlice struct {
	HoriAngleStart float64 `json:"hori_angle_start"`
	HoriAngleRange float64 `json:"hori_angle_range"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
}

// CameraInfo is the calibration record of one camera.
type CameraInfo struct {
	Name      string         `json:"name,omitempty"`
	SliceView RoundViewSlice `json:"slice_view"`
}

// CropInfo holds pixel insets of unusable border pixels.
type CropInfo struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// CenterMark pairs the source column and output column that show the same
// angular center of a camera.
type CenterMark struct {
	SliceCenterX int `json:"slice_center_x"`
	OutCenterX   int `json:"out_center_x"`
}

// OverlapInfo is the overlap band between camera i and camera i+1, as seen
// in the left source, the right source and the output frame.
type OverlapInfo struct {
	Left    Rect `json:"left"`
	Right   Rect `json:"right"`
	OutArea Rect `json:"out_area"`
}

// CopyArea is a block of pixels copied verbatim from camera InIdx.
type CopyArea struct {
	InIdx   int  `json:"in_idx"`
	InArea  Rect `json:"in_area"`
	OutArea Rect `json:"out_area"`
}

// BowlConfig is the bowl projection model handed to the renderer. The
// planner stores it and never reads it.
type BowlConfig struct {
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	C            float64 `json:"c"`
	AngleStart   float64 `json:"angle_start"`
	AngleEnd     float64 `json:"angle_end"`
	CenterZ      float64 `json:"center_z"`
	WallHeight   float64 `json:"wall_height"`
	GroundLength float64 `json:"ground_length"`
}

// Plan is a snapshot of every stage output for one configuration.
type Plan struct {
	ID           string        `json:"id,omitempty"`
	CameraNum    int           `json:"camera_num"`
	OutputWidth  int           `json:"output_width"`
	OutputHeight int           `json:"output_height"`
	Centers      []CenterMark  `json:"centers"`
	Overlaps     []OverlapInfo `json:"overlaps"`
	CopyAreas    []CopyArea    `json:"copy_areas"`
	Bowl         BowlConfig    `json:"bowl"`
}
