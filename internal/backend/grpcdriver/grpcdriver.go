// Package grpcdriver implements SPEC_FULL.md §4.7's out-of-process
// backend driver: an external backend (a native-codegen toolchain, a
// JIT, anything not worth linking into this binary) runs as a separate
// process exposing a small "BackendDriver" gRPC service
// (CheckSetup/Build/Eval), described by a dynamic protobuf descriptor
// built at startup with protoreflect/desc/protoparse rather than
// generated .pb.go code — adding a new out-of-process backend is adding
// a process that speaks this one proto shape, not regenerating code.
//
// Grounded directly on the teacher's internal/evaluator/builtins_grpc.go
// (`grpcConnect`/`grpcLoadProto`/`grpcInvoke`: a dynamic.Message request
// built against a protoparse-parsed descriptor, sent over a plain
// grpc.ClientConn.Invoke call) — the same dynamic-proto philosophy,
// aimed one layer down the stack at backend processes instead of at
// language-level `grpcConnect`/`grpcInvoke` builtins.
package grpcdriver

import (
	"context"
	"fmt"
	"io"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/bundle"
)

// protoSource describes the BackendDriver service dynamically: no
// generated code, just a descriptor parsed once at package init (the
// teacher's grpcLoadProto does the equivalent parse from an on-disk
// .proto file; this driver's shape is fixed, so the source is embedded
// instead of read from a path the operator would have to supply).
const protoSource = `
syntax = "proto3";
package effc.backend;

service BackendDriver {
  rpc CheckSetup(CheckSetupRequest) returns (CheckSetupResponse);
  rpc Build(BuildRequest) returns (BuildResponse);
  rpc Eval(EvalRequest) returns (EvalResponse);
}

message CheckSetupRequest {}

message CheckSetupResponse {
  bool ok = 1;
  string explanation = 2;
}

message BuildRequest {
  bytes bundle = 1;
  string output_path = 2;
}

message BuildResponse {
  string executable_path = 1;
  string error = 2;
}

message EvalRequest {
  string executable_path = 1;
  repeated string args = 2;
}

message EvalResponse {
  int32 exit_code = 1;
  bytes stdout = 2;
  bytes stderr = 3;
  string error = 4;
}
`

var serviceDesc = mustParseService()

func mustParseService() *desc.ServiceDescriptor {
	p := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"backend.proto": protoSource}),
	}
	fds, err := p.ParseFiles("backend.proto")
	if err != nil {
		panic(fmt.Sprintf("grpcdriver: parsing embedded proto descriptor: %v", err))
	}
	sd := fds[0].FindService("effc.backend.BackendDriver")
	if sd == nil {
		panic("grpcdriver: BackendDriver service missing from parsed descriptor")
	}
	return sd
}

func method(name string) *desc.MethodDescriptor {
	md := serviceDesc.FindMethodByName(name)
	if md == nil {
		panic("grpcdriver: no such method " + name)
	}
	return md
}

// Driver is a Driver (internal/backend.Driver) that forwards
// CheckSetup/Build/Eval to a BackendDriver gRPC service reachable at
// target, named name (the backend name this driver answers to in a
// Registry, e.g. "llvm" or "chez" — distinct from "grpc", which would be
// ambiguous once more than one out-of-process backend is registered).
type Driver struct {
	name   string
	target string
	conn   *grpc.ClientConn
}

// Dial connects to a BackendDriver service at target (host:port) and
// returns a Driver registered under name.
func Dial(name, target string) (*Driver, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpcdriver: dialing %s: %w", target, err)
	}
	return &Driver{name: name, target: target, conn: conn}, nil
}

func (d *Driver) Close() error { return d.conn.Close() }

func (d *Driver) Name() string { return d.name }

// Extension reports a generic placeholder: the real artifact extension
// is a property of whatever toolchain the remote process wraps, which
// this driver has no static knowledge of — CheckSetup's explanation
// string is where that toolchain identifies itself to an operator.
func (d *Driver) Extension() string { return ".bin" }

func (d *Driver) Prelude() []string { return nil }

func (d *Driver) Includes(stdlib string) []string { return nil }

func (d *Driver) invoke(method_ *desc.MethodDescriptor, req *dynamic.Message) (*dynamic.Message, error) {
	resp := dynamic.NewMessage(method_.GetOutputType())
	path := "/" + method_.GetService().GetFullyQualifiedName() + "/" + method_.GetName()
	if err := d.conn.Invoke(context.Background(), path, req, resp); err != nil {
		return nil, fmt.Errorf("grpcdriver: RPC %s failed: %w", method_.GetName(), err)
	}
	return resp, nil
}

func (d *Driver) CheckSetup() (bool, string) {
	req := dynamic.NewMessage(method("CheckSetup").GetInputType())
	resp, err := d.invoke(method("CheckSetup"), req)
	if err != nil {
		return false, err.Error()
	}
	ok, _ := resp.TryGetFieldByName("ok")
	explanation, _ := resp.TryGetFieldByName("explanation")
	okBool, _ := ok.(bool)
	explanationStr, _ := explanation.(string)
	return okBool, explanationStr
}

func (d *Driver) Build(prog *backend.Program, outputPath string) (string, error) {
	data, err := bundle.New(d.name, prog).Serialize()
	if err != nil {
		return "", fmt.Errorf("grpcdriver: encoding bundle: %w", err)
	}
	req := dynamic.NewMessage(method("Build").GetInputType())
	req.SetFieldByName("bundle", data)
	req.SetFieldByName("output_path", outputPath)
	resp, err := d.invoke(method("Build"), req)
	if err != nil {
		return "", err
	}
	if errMsg, _ := resp.TryGetFieldByName("error"); errMsg != nil {
		if s, _ := errMsg.(string); s != "" {
			return "", fmt.Errorf("grpcdriver: remote Build failed: %s", s)
		}
	}
	path, _ := resp.TryGetFieldByName("executable_path")
	pathStr, _ := path.(string)
	return pathStr, nil
}

func (d *Driver) Eval(executablePath string, args []string, stdout, stderr io.Writer) (int, error) {
	req := dynamic.NewMessage(method("Eval").GetInputType())
	req.SetFieldByName("executable_path", executablePath)
	argVals := make([]interface{}, len(args))
	for i, a := range args {
		argVals[i] = a
	}
	req.SetFieldByName("args", argVals)
	resp, err := d.invoke(method("Eval"), req)
	if err != nil {
		return 1, err
	}
	if errMsg, _ := resp.TryGetFieldByName("error"); errMsg != nil {
		if s, _ := errMsg.(string); s != "" {
			return 1, fmt.Errorf("grpcdriver: remote Eval failed: %s", s)
		}
	}
	if out, _ := resp.TryGetFieldByName("stdout"); out != nil {
		if b, ok := out.([]byte); ok {
			stdout.Write(b)
		}
	}
	if errOut, _ := resp.TryGetFieldByName("stderr"); errOut != nil {
		if b, ok := errOut.([]byte); ok {
			stderr.Write(b)
		}
	}
	exitCode, _ := resp.TryGetFieldByName("exit_code")
	code, _ := exitCode.(int32)
	return int(code), nil
}
