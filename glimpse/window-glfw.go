package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/cubes/lifecycle"
)

func init() {
	// glfw must run on the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win    *glfw.Window
	events eventQueue
}

func NewWindow(width, height int, title string) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	configureCallbacks(window, &w.events)

	return w, nil
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) RequestRedraw() {
	g.events.requestRedraw()
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(handle func(lifecycle.Signal) error) error {
	g.events.push(lifecycle.Resumed)

	for {
		closed, err := g.events.dispatch(handle)
		if err != nil {
			return err
		}

		if closed {
			return nil
		}

		// block until something happens if we do not need to draw
		if g.events.wantsRedraw() {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
	}
}

func configureCallbacks(window *glfw.Window, events *eventQueue) {
	window.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		slog.Debug("Framebuffer resized",
			slog.Int("width", width),
			slog.Int("height", height),
		)

		events.push(lifecycle.Resized(uint32(max(width, 0)), uint32(max(height, 0))))
	})

	window.SetIconifyCallback(func(_win *glfw.Window, iconified bool) {
		slog.Debug("Window iconified", slog.Bool("iconified", iconified))
		events.iconify(iconified)
	})

	window.SetRefreshCallback(func(_win *glfw.Window) {
		events.requestRedraw()
	})

	window.SetCloseCallback(func(_win *glfw.Window) {
		events.push(lifecycle.CloseRequested)
	})
}
