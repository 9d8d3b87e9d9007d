package animtransfer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/akmonengine/animtransfer/linalg"
	"github.com/akmonengine/animtransfer/skeleton"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_WORKERS          = 1
	DEFAULT_KEYFRAME_DIVISOR = 10
)

// State of the frame driver
type State uint8

const (
	IDLE State = iota
	LISTS_LOADED
	PER_FRAME
	DONE
)

func (s State) String() string {
	switch s {
	case IDLE:
		return "idle"
	case LISTS_LOADED:
		return "lists loaded"
	case PER_FRAME:
		return "per frame"
	default:
		return "done"
	}
}

type Transfer struct {
	// Divisor turns the raw keyframe count of the source root into the number of frames to process
	Divisor int
	// Size caps the joints collected per skeleton: 0 takes half of the scene joints, negative walks full subtrees.
	// With a cap, a target larger than the cap is truncated silently and only a shorter skeleton
	// shows up as a topology mismatch; use a negative Size to compare full subtrees.
	Size int
	// Workers used for the per-joint matrix work, host calls always stay on the calling goroutine
	Workers int
	Algebra linalg.Algebra

	Events Events

	running sync.Mutex
}

// Report summarizes a run
type Report struct {
	Frames  int
	Joints  int
	Skipped []*NumericalError
}

// Err joins the numerical errors of the run, nil when every joint was applied
func (r *Report) Err() error {
	if r == nil || len(r.Skipped) == 0 {
		return nil
	}
	errs := make([]error, len(r.Skipped))
	for i, e := range r.Skipped {
		errs[i] = e
	}

	return errors.Join(errs...)
}

// Retarget runs a Transfer with default settings.
// Numerical errors are returned joined once every frame has been processed.
func Retarget(host skeleton.Host, sourceRoot, targetRoot skeleton.Joint) error {
	var t Transfer
	report, err := t.Run(host, sourceRoot, targetRoot)
	if err != nil {
		return err
	}

	return report.Err()
}

// Run retargets the animation of the source skeleton onto the target skeleton, keying every processed frame.
// Host failures abort the run; singular matrices only skip the affected joint for that frame.
func (t *Transfer) Run(host skeleton.Host, sourceRoot, targetRoot skeleton.Joint) (*Report, error) {
	if !t.running.TryLock() {
		return nil, ErrBusy
	}
	defer t.running.Unlock()
	defer t.Events.flush()

	t.Workers = max(DEFAULT_WORKERS, t.Workers)
	if t.Divisor <= 0 {
		t.Divisor = DEFAULT_KEYFRAME_DIVISOR
	}
	if t.Algebra == nil {
		t.Algebra = linalg.Default()
	}
	t.setState(IDLE, 0)

	size := t.Size
	if size == 0 {
		half, err := HalfJointCount(host)
		if err != nil {
			return nil, &HostIOError{Op: "count joints", Frame: -1, Err: err}
		}
		size = half
	}

	source, err := Walk(sourceRoot, size)
	if err != nil {
		return nil, &HostIOError{Op: "walk source", Frame: -1, Err: err}
	}
	target, err := Walk(targetRoot, size)
	if err != nil {
		return nil, &HostIOError{Op: "walk target", Frame: -1, Err: err}
	}
	if len(source) != len(target) {
		return nil, &TopologyMismatchError{SourceJoints: len(source), TargetJoints: len(target)}
	}
	t.setState(LISTS_LOADED, 0)

	count, err := host.KeyframeCount(sourceRoot)
	if err != nil {
		return nil, &HostIOError{Op: "keyframe count", Frame: -1, Err: err}
	}

	r := newRun(t, host, source, target)
	length := count / t.Divisor
	for frame := 0; frame < length; frame++ {
		t.setState(PER_FRAME, frame)
		if err := r.frame(frame); err != nil {
			// best effort, the first failure is the one reported
			_ = host.SetCurrentFrame(0)
			return r.report, err
		}
		r.report.Frames++
	}

	if err := host.SetCurrentFrame(0); err != nil {
		return r.report, &HostIOError{Op: "reset timeline", Frame: -1, Err: err}
	}
	t.setState(DONE, 0)
	t.Events.emit(TransferDoneEvent{Frames: r.report.Frames})

	return r.report, nil
}

func (t *Transfer) setState(state State, frame int) {
	t.Events.emit(StateChangedEvent{State: state, Frame: frame})
}

// run owns every buffer of a single transfer
type run struct {
	transfer *Transfer
	host     skeleton.Host

	source, target         Hierarchy
	sourceBind, targetBind *BindPose
	keys, orientations     []mgl64.Mat4
	world, final           []mgl64.Mat4
	failures               []*NumericalError
	joints                 []int

	report *Report
}

func newRun(t *Transfer, host skeleton.Host, source, target Hierarchy) *run {
	size := len(source)
	joints := make([]int, 0, size)
	for i := 1; i < size; i++ {
		joints = append(joints, i)
	}

	return &run{
		transfer:     t,
		host:         host,
		source:       source,
		target:       target,
		sourceBind:   NewBindPose(size),
		targetBind:   NewBindPose(size),
		keys:         make([]mgl64.Mat4, size),
		orientations: make([]mgl64.Mat4, size),
		world:        make([]mgl64.Mat4, size),
		final:        make([]mgl64.Mat4, size),
		failures:     make([]*NumericalError, size),
		joints:       joints,
		report:       &Report{Joints: size},
	}
}

func (r *run) frame(frame int) error {
	algebra := r.transfer.Algebra
	clear(r.failures)

	if err := r.host.SetCurrentFrame(frame); err != nil {
		return &HostIOError{Op: "set current frame", Frame: frame, Err: err}
	}

	// source side
	if err := r.sourceBind.Capture(algebra, r.source); err != nil {
		return &HostIOError{Op: "capture source bind pose", Frame: frame, Err: err}
	}
	if err := r.read(r.source, true); err != nil {
		return &HostIOError{Op: "read source", Frame: frame, Err: err}
	}
	task(r.transfer.Workers, r.joints, func(i int) {
		world, err := Isolate(algebra, r.sourceBind, i, r.keys[i], r.orientations[i])
		if err != nil {
			r.failures[i] = &NumericalError{Frame: frame, Index: i, Joint: r.source[i].Joint.Name(), Side: SOURCE, Err: err}
			return
		}
		r.world[i] = world
	})

	// target side
	if err := r.targetBind.Capture(algebra, r.target); err != nil {
		return &HostIOError{Op: "capture target bind pose", Frame: frame, Err: err}
	}
	if err := r.read(r.target, false); err != nil {
		return &HostIOError{Op: "read target", Frame: frame, Err: err}
	}
	task(r.transfer.Workers, r.joints, func(i int) {
		if r.failures[i] != nil {
			return
		}
		final, err := Compose(algebra, r.targetBind, i, r.world[i], r.orientations[i])
		if err != nil {
			r.failures[i] = &NumericalError{Frame: frame, Index: i, Joint: r.target[i].Joint.Name(), Side: TARGET, Err: err}
			return
		}
		r.final[i] = final
	})

	applied, err := r.write(frame)
	if err != nil {
		return err
	}
	if err := r.copyRoot(); err != nil {
		return &HostIOError{Op: "copy root", Frame: frame, Err: err}
	}

	r.transfer.Events.emit(FrameAppliedEvent{Frame: frame, Applied: applied, Skipped: len(r.joints) - applied})
	r.transfer.Events.flush()

	return nil
}

// read loads orientations, and rotations when withKeys is set, of every non-root joint
func (r *run) read(hierarchy Hierarchy, withKeys bool) error {
	for _, entry := range hierarchy[1:] {
		joint := entry.Joint
		if withKeys {
			key, err := joint.Rotation()
			if err != nil {
				return fmt.Errorf("rotation of %s: %w", joint.Name(), err)
			}
			r.keys[entry.Index] = key
		}
		orientation, err := joint.Orientation()
		if err != nil {
			return fmt.Errorf("orientation of %s: %w", joint.Name(), err)
		}
		r.orientations[entry.Index] = orientation
	}

	return nil
}

func (r *run) write(frame int) (int, error) {
	applied := 0
	for _, i := range r.joints {
		if failure := r.failures[i]; failure != nil {
			r.report.Skipped = append(r.report.Skipped, failure)
			r.transfer.Events.emit(JointSkippedEvent{Err: failure})
			continue
		}

		joint := r.target[i].Joint
		if err := joint.SetRotation(r.final[i]); err != nil {
			return applied, &HostIOError{Op: "write " + joint.Name(), Frame: frame, Err: err}
		}
		if err := r.host.RecordKeyframe(joint); err != nil {
			return applied, &HostIOError{Op: "keyframe " + joint.Name(), Frame: frame, Err: err}
		}
		applied++
	}

	return applied, nil
}

// copyRoot passes the source root's orientation, rotation and translation to the target root unchanged
func (r *run) copyRoot() error {
	source, target := r.source[0].Joint, r.target[0].Joint

	orientation, err := source.Orientation()
	if err != nil {
		return err
	}
	rotation, err := source.Rotation()
	if err != nil {
		return err
	}
	translation, err := source.Translation()
	if err != nil {
		return err
	}

	if err := target.SetOrientation(orientation); err != nil {
		return err
	}
	if err := target.SetRotation(rotation); err != nil {
		return err
	}
	if err := target.SetTranslation(translation); err != nil {
		return err
	}

	return r.host.RecordKeyframe(target)
}
