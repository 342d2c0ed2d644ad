package pulse

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

//go:embed shader.wgsl
var shaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ValidateShader compiles the wgsl source to SPIR-V to catch errors before
// the device sees the shader.
func ValidateShader(source string) error {
	_, err := compileShader(source)
	return err
}

func compileShader(source string) ([]byte, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	if len(spirv) < 4 || len(spirv)%4 != 0 {
		return nil, fmt.Errorf("compile shader: invalid SPIR-V module of %d bytes", len(spirv))
	}

	return spirv, nil
}

func createShaderModule(ctx *GraphicsContext) (*wgpu.ShaderModule, error) {
	if ctx.opts.ValidateShader {
		if err := ValidateShader(shaderSource); err != nil {
			return nil, err
		}
	}

	module, err := ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "shader.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderSource},
	})

	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}

	return module, nil
}
