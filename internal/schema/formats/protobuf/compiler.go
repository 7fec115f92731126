package protobuf

import (
	"context"
	"fmt"
	"strings"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/schema"
)

// Compiler compiles protobuf dataset schema definitions.
type Compiler struct{}

// NewCompiler creates a new protobuf compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile parses a .proto definition and returns the compiled dataset.
// The proto's first top-level message defines the columns: each scalar
// field maps to an element type, in declaration order. proto3 fields are
// optional, so protobuf datasets have no required columns.
func (c *Compiler) Compile(ctx context.Context, ds *schema.Dataset) (*schema.CompiledDataset, error) {
	// Validate format
	if ds.Format != schema.FormatProtobuf {
		return nil, fmt.Errorf("expected protobuf format, got %s", ds.Format)
	}

	// Create a virtual file name for the proto
	fileName := fmt.Sprintf("%s_v%d.proto", strings.ReplaceAll(ds.Name, ".", "_"), ds.Version)

	// Create a resolver that provides the proto content
	resolver := &singleFileResolver{
		fileName: fileName,
		content:  string(ds.Definition),
	}

	// Configure the compiler
	compiler := protocompile.Compiler{
		Resolver:       protocompile.WithStandardImports(resolver),
		SourceInfoMode: protocompile.SourceInfoNone,
	}

	// Compile the proto file
	files, err := compiler.Compile(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile proto: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files compiled")
	}

	// Get the file descriptor
	fd := files[0]

	// Find the message descriptor - expect exactly one top-level message
	messages := fd.Messages()
	if messages.Len() == 0 {
		return nil, fmt.Errorf("proto must define at least one message")
	}

	// Use the first message as the column layout
	msgDesc := messages.Get(0)
	protoFields := msgDesc.Fields()

	fields := make([]schema.FieldSpec, 0, protoFields.Len())
	for i := 0; i < protoFields.Len(); i++ {
		pf := protoFields.Get(i)
		dt, err := fieldDType(pf)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", pf.Name(), err)
		}
		fields = append(fields, schema.FieldSpec{
			Name:  string(pf.Name()),
			DType: dt,
		})
	}

	return schema.NewCompiledDataset(ds.Name, ds.Version, schema.FormatProtobuf, ds.StrictMode, fields), nil
}

// fieldDType maps a proto field to its column element type. Unsigned
// 32-bit kinds widen to int64; unsigned 64-bit kinds go to decimal so no
// value can overflow. Types outside the column model are definition errors.
func fieldDType(fd protoreflect.FieldDescriptor) (column.DType, error) {
	if fd.IsList() || fd.IsMap() {
		return "", fmt.Errorf("repeated and map fields cannot be dataset columns")
	}

	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return column.Int32, nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return column.Int64, nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return column.Int64, nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return column.Decimal, nil
	case protoreflect.FloatKind:
		return column.Float32, nil
	case protoreflect.DoubleKind:
		return column.Float64, nil
	case protoreflect.StringKind:
		return column.String, nil
	case protoreflect.MessageKind:
		if fd.Message().FullName() == "google.protobuf.Timestamp" {
			return column.Timestamp, nil
		}
		return "", fmt.Errorf("message type %s cannot be a dataset column", fd.Message().FullName())
	default:
		return "", fmt.Errorf("%s fields cannot be dataset columns", fd.Kind())
	}
}

// singleFileResolver provides proto content for compilation.
type singleFileResolver struct {
	fileName string
	content  string
}

func (r *singleFileResolver) FindFileByPath(path string) (protocompile.SearchResult, error) {
	if path == r.fileName {
		return protocompile.SearchResult{
			Source: strings.NewReader(r.content),
		}, nil
	}
	return protocompile.SearchResult{}, fmt.Errorf("file not found: %s", path)
}
