package stitch

// Stitcher holds one rig configuration and the outputs of the four planning
// stages. It is not safe for concurrent use; callers serialise configuration
// changes against readers of the produced plan.
type Stitcher struct {
	alignX        int
	alignY        int
	outputWidth   int
	outputHeight  int
	outStartAngle float64
	cameraNum     int
	bowl          BowlConfig

	cameraInfo  [MaxCameras]CameraInfo
	cropInfo    [MaxCameras]CropInfo
	centerMarks [MaxCameras]CenterMark
	overlapInfo [MaxCameras]OverlapInfo
	copyAreas   []CopyArea

	// Stage flags only move from false to true until the next reset.
	cropSet       bool
	centersMarked bool
	overlapSet    bool
	copyAreasSet  bool
}

// New returns a Stitcher aligning output columns to multiples of alignX and
// rows to multiples of alignY.
func New(alignX, alignY int) (*Stitcher, error) {
	if alignX < 1 || alignY < 1 {
		return nil, paramErr("new", "alignment must be >= 1, got x=%d y=%d", alignX, alignY)
	}
	return &Stitcher{
		alignX:        alignX,
		alignY:        alignY,
		outStartAngle: DefaultOutStartAngle,
	}, nil
}

// Reset clears every stage flag and derived array. Camera inputs are kept;
// crops are cleared and must be supplied again.
func (s *Stitcher) Reset() {
	s.cropSet = false
	s.cropInfo = [MaxCameras]CropInfo{}
	s.invalidateCenters()
}

// invalidateCenters drops center marks and everything derived from them.
func (s *Stitcher) invalidateCenters() {
	s.centersMarked = false
	s.centerMarks = [MaxCameras]CenterMark{}
	s.overlapSet = false
	s.overlapInfo = [MaxCameras]OverlapInfo{}
	s.copyAreasSet = false
	s.copyAreas = nil
}

// Alignment returns the horizontal and vertical alignment granularity.
func (s *Stitcher) Alignment() (x, y int) { return s.alignX, s.alignY }

// SetAlignment changes the alignment grid and resets the stitcher.
func (s *Stitcher) SetAlignment(alignX, alignY int) error {
	if alignX < 1 || alignY < 1 {
		return paramErr("set alignment", "alignment must be >= 1, got x=%d y=%d", alignX, alignY)
	}
	s.alignX, s.alignY = alignX, alignY
	s.Reset()
	return nil
}

// OutputSize returns the output frame size.
func (s *Stitcher) OutputSize() (width, height int) { return s.outputWidth, s.outputHeight }

// SetOutputSize sets the output frame size and resets the stitcher.
func (s *Stitcher) SetOutputSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return paramErr("set output size", "size must be positive, got %dx%d", width, height)
	}
	s.outputWidth, s.outputHeight = width, height
	s.Reset()
	return nil
}

// OutStartAngle returns the angle mapped to output column 0.
func (s *Stitcher) OutStartAngle() float64 { return s.outStartAngle }

// SetOutStartAngle sets the angle mapped to output column 0.
func (s *Stitcher) SetOutStartAngle(angle float64) {
	s.outStartAngle = angle
	s.invalidateCenters()
}

// CameraNum returns the configured camera count.
func (s *Stitcher) CameraNum() int { return s.cameraNum }

// SetCameraNum sets the camera count and resets the stitcher. A ring needs
// at least two cameras; 0 returns the stitcher to its unconfigured state.
func (s *Stitcher) SetCameraNum(num int) error {
	if num != 0 && (num < 2 || num > MaxCameras) {
		return paramErr("set camera num", "num %d outside [2, %d]", num, MaxCameras)
	}
	s.cameraNum = num
	s.Reset()
	return nil
}

// SetCameraInfo stores the calibration of camera index.
func (s *Stitcher) SetCameraInfo(index int, info CameraInfo) error {
	if index < 0 || index >= s.cameraNum {
		return paramErr("set camera info", "index %d exceeds camera num %d", index, s.cameraNum)
	}
	v := info.SliceView
	if v.Width <= 0 || v.Height <= 0 {
		return paramErr("set camera info", "camera %d has size %dx%d", index, v.Width, v.Height)
	}
	if !(v.HoriAngleRange > 0 && v.HoriAngleRange <= 360) {
		return paramErr("set camera info", "camera %d angle range %.2f outside (0, 360]", index, v.HoriAngleRange)
	}
	if crop := s.cropInfo[index]; crop.Left+crop.Right >= v.Width || crop.Top+crop.Bottom >= v.Height {
		return paramErr("set camera info", "camera %d crop %+v leaves no pixels of %dx%d", index, crop, v.Width, v.Height)
	}
	s.cameraInfo[index] = info
	s.invalidateCenters()
	return nil
}

// CameraInfo returns the calibration stored for camera index.
func (s *Stitcher) CameraInfo(index int) (CameraInfo, error) {
	if index < 0 || index >= MaxCameras {
		return CameraInfo{}, paramErr("get camera info", "index %d exceeds max cameras %d", index, MaxCameras)
	}
	return s.cameraInfo[index], nil
}

// SetCropInfo stores explicit crop margins for camera index and marks the
// crop stage resolved. Cameras without explicit margins keep zero crops.
func (s *Stitcher) SetCropInfo(index int, crop CropInfo) error {
	if index < 0 || index >= s.cameraNum {
		return paramErr("set crop info", "index %d exceeds camera num %d", index, s.cameraNum)
	}
	if crop.Left < 0 || crop.Right < 0 || crop.Top < 0 || crop.Bottom < 0 {
		return paramErr("set crop info", "camera %d has negative crop %+v", index, crop)
	}
	v := s.cameraInfo[index].SliceView
	if v.Width > 0 && (crop.Left+crop.Right >= v.Width || crop.Top+crop.Bottom >= v.Height) {
		return paramErr("set crop info", "camera %d crop %+v leaves no pixels of %dx%d", index, crop, v.Width, v.Height)
	}
	s.cropInfo[index] = crop
	s.cropSet = true
	s.invalidateCenters()
	return nil
}

// CropInfo returns the crop margins of camera index.
func (s *Stitcher) CropInfo(index int) (CropInfo, error) {
	if index < 0 || index >= s.cameraNum {
		return CropInfo{}, paramErr("get crop info", "index %d exceeds camera num %d", index, s.cameraNum)
	}
	return s.cropInfo[index], nil
}

// SetBowlConfig stores the bowl projection model for the renderer.
func (s *Stitcher) SetBowlConfig(cfg BowlConfig) { s.bowl = cfg }

// BowlConfig returns the stored bowl projection model.
func (s *Stitcher) BowlConfig() BowlConfig { return s.bowl }

// CenterMarks returns a copy of the marked centers, one per camera.
func (s *Stitcher) CenterMarks() []CenterMark {
	if !s.centersMarked {
		return nil
	}
	return append([]CenterMark(nil), s.centerMarks[:s.cameraNum]...)
}

// OverlapInfos returns a copy of the overlap bands; entry i is the band
// between camera i and camera (i+1) mod N.
func (s *Stitcher) OverlapInfos() []OverlapInfo {
	if !s.overlapSet {
		return nil
	}
	return append([]OverlapInfo(nil), s.overlapInfo[:s.cameraNum]...)
}

// CopyAreas returns a copy of the final copy areas.
func (s *Stitcher) CopyAreas() []CopyArea {
	if !s.copyAreasSet {
		return nil
	}
	return append([]CopyArea(nil), s.copyAreas...)
}

// Plan runs every stage that has not completed yet and returns a snapshot.
func (s *Stitcher) Plan() (*Plan, error) {
	if err := s.EstimateCoarseCrops(); err != nil {
		return nil, err
	}
	if err := s.MarkCenters(); err != nil {
		return nil, err
	}
	if err := s.EstimateOverlap(); err != nil {
		return nil, err
	}
	if err := s.UpdateCopyAreas(); err != nil {
		return nil, err
	}
	return &Plan{
		CameraNum:    s.cameraNum,
		OutputWidth:  s.outputWidth,
		OutputHeight: s.outputHeight,
		Centers:      s.CenterMarks(),
		Overlaps:     s.OverlapInfos(),
		CopyAreas:    s.CopyAreas(),
		Bowl:         s.bowl,
	}, nil
}
