package main

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/common"
	"github.com/calder-dev/pentaview/engine"
	"github.com/calder-dev/pentaview/engine/camera"
	"github.com/calder-dev/pentaview/engine/mesh"
	"github.com/calder-dev/pentaview/engine/renderer"
	"github.com/calder-dev/pentaview/engine/scene"
	"github.com/calder-dev/pentaview/engine/window"
)

//go:embed assets/pentagon.png
var pentagonPNG []byte

func main() {
	logger := zap.Must(zap.NewDevelopment())
	defer func() { _ = logger.Sync() }()

	win := window.NewWindow(
		window.WithTitle("pentaview"),
		window.WithWidth(800),
		window.WithHeight(600),
	)

	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("gpu context initialization failed", zap.Error(err))
	}
	defer r.Release()

	texture, err := (&common.EmbeddedTexture{Name: "pentagon.png", Data: pentagonPNG}).Decode()
	if err != nil {
		logger.Fatal("texture decode failed", zap.Error(err))
	}

	cam := camera.NewCamera(
		camera.WithEye(mgl32.Vec3{0, 1, 2}),
		camera.WithTarget(mgl32.Vec3{0, 0, 0}),
		camera.WithUp(mgl32.Vec3{0, 1, 0}),
		camera.WithFovy(45),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(0.1),
		camera.WithFar(100),
	)
	ctrl := camera.NewCameraController(camera.WithSpeed(0.2))

	pentagon := mesh.NewPentagon(texture)

	st, err := scene.NewState(r, cam, ctrl, pentagon, logger)
	if err != nil {
		logger.Fatal("scene initialization failed", zap.Error(err))
	}
	defer st.Release()

	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithState(st),
		engine.WithLogger(logger),
		engine.WithProfiling(true),
	)
	if err != nil {
		logger.Fatal("engine initialization failed", zap.Error(err))
	}

	eng.Run()
}
