// Command jvmgo runs a compiled Java SE 8 class file, resolving
// java.base off a jmod the way the platform bootstrap class loader
// would, with every application class above it coming from an
// explicit --classpath.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daimatz/jvmgo/pkg/classpath"
	"github.com/daimatz/jvmgo/pkg/gfunction"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/interpreter"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

var (
	jrePath    string
	classPath  string
	stackDepth int
)

// findJmodPath resolves java.base.jmod the same way the JDK's own
// launcher would, falling back through an explicit flag, JAVA_BASE_JMOD,
// JAVA_HOME, and a glob over the usual Linux package layout.
func findJmodPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("JAVA_BASE_JMOD"); env != "" {
		return env
	}
	if javaHome := os.Getenv("JAVA_HOME"); javaHome != "" {
		p := filepath.Join(javaHome, "jmods", "java.base.jmod")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	matches, _ := filepath.Glob("/usr/lib/jvm/java-*-openjdk-*/jmods/java.base.jmod")
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func buildLoader() (*heap.ClassLoader, error) {
	jmod := findJmodPath(jrePath)
	var bootstrap *heap.ClassLoader
	if jmod != "" {
		entry, err := classpath.NewJmodEntry(jmod)
		if err != nil {
			return nil, fmt.Errorf("jvmgo: opening java.base.jmod: %w", err)
		}
		bootstrap = heap.NewClassLoader(entry)
	}

	entry, err := classpath.ParseClassPath(classPath)
	if err != nil {
		return nil, fmt.Errorf("jvmgo: parsing classpath: %w", err)
	}
	loader := heap.NewClassLoader(entry)
	loader.Parent = bootstrap
	return loader, nil
}

// runClinit drives a class's own <clinit>, if it declares one, to
// completion before any of its code can observe its static fields
// (JVMS 5.5's initialization trigger).
func runClinit(class *heap.Class) error {
	clinit := class.GetMethod("<clinit>", "()V")
	if clinit == nil {
		return nil
	}
	thread := rtda.NewThreadWithStackDepth(stackDepth)
	if err := thread.PushFrame(rtda.NewFrame(clinit)); err != nil {
		return err
	}
	return interpreter.Run(thread)
}

func runClass(className string) error {
	loader, err := buildLoader()
	if err != nil {
		return err
	}

	class, err := loader.LoadClass(className)
	if err != nil {
		return fmt.Errorf("jvmgo: loading %s: %w", className, err)
	}

	if err := runClinit(class); err != nil {
		return fmt.Errorf("jvmgo: <clinit> of %s: %w", className, err)
	}

	main := class.GetMethod("main", "([Ljava/lang/String;)V")
	if main == nil || !main.IsStatic() {
		return fmt.Errorf("jvmgo: %s has no static void main(String[])", className)
	}

	thread := rtda.NewThreadWithStackDepth(stackDepth)
	frame := rtda.NewFrame(main)
	frame.LocalVars.SetRef(0, nil) // command-line args are out of scope; main sees an empty reference
	if err := thread.PushFrame(frame); err != nil {
		return err
	}
	return interpreter.Run(thread)
}

func classNameFromArg(arg string) string {
	if strings.HasSuffix(arg, ".class") {
		arg = strings.TrimSuffix(arg, ".class")
	}
	return filepath.ToSlash(arg)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <class-or-path>",
		Short: "Run a class's main method",
		Long:  "Loads the named class off --classpath (plus java.base from --jre), runs its static initializer, and calls its main(String[]) method.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gfunction.Configure(os.Stdout, os.Stderr)
			return runClass(classNameFromArg(args[0]))
		},
	}
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "jvmgo",
		Short: "A Java SE 8 class file interpreter",
		Long:  "jvmgo loads and interprets compiled Java SE 8 class files directly, without a JIT or a full java.base implementation.",
	}

	rootCmd.PersistentFlags().StringVar(&jrePath, "jre", "", "path to java.base.jmod (defaults to JAVA_HOME or a system glob)")
	rootCmd.PersistentFlags().StringVar(&classPath, "classpath", ".", "application classpath, platform-list-separator joined")
	rootCmd.PersistentFlags().IntVar(&stackDepth, "xss", rtda.DefaultMaxStackDepth, "maximum frame stack depth per thread")

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
