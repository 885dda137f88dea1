package kotlin

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// JNIGenerator emits the JNI source implementing the external funs of the
// Kotlin wrapper by forwarding to the C++ interface.
type JNIGenerator struct{}

// NewJNI returns the JNI binding generator.
func NewJNI() *JNIGenerator { return &JNIGenerator{} }

// Name implements gen.Generator.
func (*JNIGenerator) Name() string { return "jni" }

// Outputs implements gen.Generator.
func (*JNIGenerator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*JNIGenerator) Comment(text string) []string { return cpp.Comment(text) }

// Generate implements gen.Generator.
func (*JNIGenerator) Generate(api *schema.API, cfg *gen.Config, _, src *gen.Context) error {
	switch {
	case cfg.APIHeader == "":
		return gen.NewConfigError("api_h", nil, "jni requires the C++ API header")
	case cfg.Package == "":
		return gen.NewConfigError("api_pkg", nil, "jni requires the Kotlin package")
	}
	e := gen.NewEmitter(src)
	cpp.Include(src, cfg.APIHeader, "platform/mobile/mobile.h", "jni_util.h", "core/core.h")
	e.AddLines(
		"",
		`#define BNG_JNI_METHOD(METHOD) JNIEXPORT JNICALL \`,
		fmt.Sprintf("  Java_%s_##METHOD", Mangle(cfg.Package)),
		"",
	)
	ec, err := cpp.PushExternC(src)
	if err != nil {
		return err
	}
	ns := cpp.Namespace(api)
	for _, c := range api.Classes() {
		for _, m := range c.Methods() {
			n, ok := bindNative(m, m.IsStatic())
			if !ok {
				e.AddLines(fmt.Sprintf("// %s.%s: signature not representable over JNI", c.Name(), m.Name()))
				continue
			}
			target := fmt.Sprintf("%s::%s::%s", ns, c.Name(), m.Name())
			if !m.IsStatic() {
				target = fmt.Sprintf("reinterpret_cast<%s::%s*>(handle)->%s", ns, c.Name(), m.Name())
			}
			jniMethod(e, c.Name(), n, target, ns)
		}
		b := e.PushBlock(
			fmt.Sprintf("void BNG_JNI_METHOD(%s_destroyJNI)(JNIEnv *env, jobject thiz, jlong handle) {", Mangle(c.Name())),
			gen.Indent(), gen.PostPop("}", ""))
		e.AddLines(
			"(void)env;",
			"(void)thiz;",
			fmt.Sprintf("delete reinterpret_cast<%s::%s*>(handle);", ns, c.Name()),
		)
		e.Pop(b)
	}
	holder := gen.Pascal(api.Name())
	for _, fn := range api.Functions() {
		n, ok := bindNative(fn, true)
		if !ok {
			e.AddLines(fmt.Sprintf("// %s: signature not representable over JNI", fn.Name()))
			continue
		}
		jniMethod(e, holder, n, ns+"::"+fn.Name(), ns)
	}
	e.Pop(ec)
	return e.Err()
}

func jniMethod(e *gen.Emitter, owner string, n *native, target, ns string) {
	params := []string{"JNIEnv *env"}
	receiver := "thiz"
	if n.static {
		receiver = "clazz"
		params = append(params, "jclass clazz")
	} else {
		params = append(params, "jobject thiz", "jlong handle")
	}
	var (
		body    []string
		args    = make([]string, len(n.params))
		needJVE bool
	)
	for i, p := range n.params {
		params = append(params, p.jni()+" "+p.name)
		switch p.kind {
		case kindString:
			needJVE = true
			body = append(body, fmt.Sprintf("std::string %s_arg = jve.toString(%s);", p.name, p.name))
			args[i] = p.name + "_arg"
		case kindDoubles:
			needJVE = true
			body = append(body, fmt.Sprintf("std::vector<double> %s_arg = jve.toVector(%s);", p.name, p.name))
			args[i] = p.name + "_arg"
		case kindEnum:
			args[i] = fmt.Sprintf("static_cast<%s::%s>(%s)", ns, p.elem.Name(), p.name)
		case kindHandle:
			args[i] = fmt.Sprintf("reinterpret_cast<%s::%s*>(%s)", ns, p.elem.Name(), p.name)
			if p.ref == schema.RefNonOptional {
				args[i] = "*" + args[i]
			}
		default:
			args[i] = p.name
		}
	}
	call := fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))

	r := n.result
	switch r.kind {
	case kindVoid:
		body = append(body, call+";")
	case kindString:
		needJVE = true
		body = append(body, fmt.Sprintf("return jve.toJString(%s.c_str());", call))
	case kindHandle:
		switch r.ref {
		case schema.RefUnique:
			call += ".release()"
		case schema.RefNonOptional:
			call = "&" + call
		}
		body = append(body, fmt.Sprintf("return reinterpret_cast<jlong>(%s);", call))
	default:
		body = append(body, fmt.Sprintf("return static_cast<%s>(%s);", r.jni(), call))
	}

	pre := []string{"(void)" + receiver + ";"}
	if needJVE {
		pre = append(pre, "auto jve = JVE(env);")
	} else {
		pre = append(pre, "(void)env;")
	}

	b := e.PushBlock(
		fmt.Sprintf("%s BNG_JNI_METHOD(%s_%s)(%s) {", r.jni(), Mangle(owner), Mangle(externalName(n.name)), strings.Join(params, ", ")),
		gen.Indent(), gen.PostPop("}", ""))
	e.AddLines(pre...)
	e.AddLines(body...)
	e.Pop(b)
}
