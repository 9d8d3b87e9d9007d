package animtransfer

import (
	"errors"
	"testing"

	"github.com/akmonengine/animtransfer/linalg"
	"github.com/akmonengine/animtransfer/memhost"
	"github.com/go-gl/mathgl/mgl64"
)

func TestBindPose_CaptureOnce(t *testing.T) {
	scene := memhost.New()
	root := scene.AddJoint("root", nil, pose(memhost.Rotate(0, 0.5, 0), mgl64.Ident4()))
	child := scene.AddJoint("child", root, pose(memhost.Rotate(0.2, 0, 0), mgl64.Ident4()))

	h, err := Walk(root, -1)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	bind := NewBindPose(len(h))
	if bind.Captured() {
		t.Fatal("Captured() = true before Capture")
	}
	if err := bind.Capture(linalg.MathGL{}, h); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	assertMat4(t, "Rest[1]", bind.Rest[1], memhost.Rotate(0.2, 0, 0))
	assertMat4(t, "Chain[1]", bind.Chain[1], memhost.Rotate(0, 0.5, 0))

	scene.SetPose(child, pose(memhost.Rotate(1, 1, 1), mgl64.Ident4()))
	if err := bind.Capture(linalg.MathGL{}, h); err != nil {
		t.Fatalf("second Capture() error = %v", err)
	}
	assertMat4(t, "Rest[1] after second capture", bind.Rest[1], memhost.Rotate(0.2, 0, 0))
}

// chain and orientation do not commute here, Compose must still undo Isolate
func TestIsolateCompose_RoundTrip(t *testing.T) {
	bind := NewBindPose(2)
	bind.Rest[1] = memhost.Rotate(0.3, -0.2, 0.6)
	bind.Chain[1] = memhost.Rotate(0.1, 0.9, 0)
	orientation := memhost.Rotate(0, 0.4, -0.3)
	key := memhost.Rotate(0.5, 0.5, 0.1)

	for _, algebra := range []linalg.Algebra{linalg.MathGL{}, linalg.Gonum{}} {
		world, err := Isolate(algebra, bind, 1, key, orientation)
		if err != nil {
			t.Fatalf("Isolate() error = %v", err)
		}
		final, err := Compose(algebra, bind, 1, world, orientation)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		assertMat4(t, "Compose(Isolate(key))", final, key)
	}
}

func TestIsolate_ConjugatesByChainThenOrientation(t *testing.T) {
	bind := NewBindPose(2)
	bind.Rest[1] = memhost.Rotate(0.2, 0.1, 0)
	bind.Chain[1] = memhost.Rotate(0, 0.8, 0.3)
	orientation := memhost.Rotate(0.6, 0, -0.2)
	key := memhost.Rotate(-0.4, 0.3, 0.9)

	world, err := Isolate(linalg.MathGL{}, bind, 1, key, orientation)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	frame := bind.Chain[1].Mul4(orientation)
	isolated := key.Mul4(bind.Rest[1].Inv())
	assertMat4(t, "world", world, frame.Mul4(isolated).Mul4(frame.Inv()))
}

func TestIsolate_NoChainReducesToOrientation(t *testing.T) {
	bind := NewBindPose(2)
	bind.Rest[1] = memhost.Rotate(0.2, 0, 0)
	orientation := memhost.Rotate(0, 0, 0.7)
	key := memhost.Rotate(0.9, 0, 0)

	world, err := Isolate(linalg.MathGL{}, bind, 1, key, orientation)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	isolated := key.Mul4(bind.Rest[1].Inv())
	assertMat4(t, "world", world, orientation.Mul4(isolated).Mul4(orientation.Inv()))
}

func TestIsolate_Singular(t *testing.T) {
	tests := []struct {
		name        string
		key         mgl64.Mat4
		rest        mgl64.Mat4
		chain       mgl64.Mat4
		orientation mgl64.Mat4
	}{
		{"key", mgl64.Mat4{}, mgl64.Ident4(), mgl64.Ident4(), mgl64.Ident4()},
		{"rest", mgl64.Ident4(), mgl64.Mat4{}, mgl64.Ident4(), mgl64.Ident4()},
		{"chain", mgl64.Ident4(), mgl64.Ident4(), mgl64.Mat4{}, mgl64.Ident4()},
		{"orientation", mgl64.Ident4(), mgl64.Ident4(), mgl64.Ident4(), mgl64.Mat4{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bind := NewBindPose(2)
			bind.Rest[1] = tt.rest
			bind.Chain[1] = tt.chain

			for _, algebra := range []linalg.Algebra{linalg.MathGL{}, linalg.Gonum{}} {
				if _, err := Isolate(algebra, bind, 1, tt.key, tt.orientation); !errors.Is(err, linalg.ErrSingular) {
					t.Errorf("Isolate() error = %v, want ErrSingular", err)
				}
			}
		})
	}
}

func TestCompose_DegenerateResult(t *testing.T) {
	bind := NewBindPose(2)
	if _, err := Compose(linalg.MathGL{}, bind, 1, mgl64.Mat4{}, mgl64.Ident4()); !errors.Is(err, linalg.ErrSingular) {
		t.Errorf("Compose() error = %v, want ErrSingular", err)
	}
}

func TestTask_VisitsEveryItem(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 20} {
		data := make([]int, 13)
		for i := range data {
			data[i] = i
		}
		seen := make([]int, len(data))
		task(workers, data, func(i int) {
			seen[i]++
		})
		for i, count := range seen {
			if count != 1 {
				t.Errorf("workers=%d: item %d visited %d times", workers, i, count)
			}
		}
	}
}
