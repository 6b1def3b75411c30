// axion is a formal reasoning CLI: a proof kernel, a bounded theorem prover
// over built-in axiomatic theories, symbolic calculus, and a persistent proof
// session.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"axion/internal/cas"
	"axion/internal/config"
	"axion/internal/kernel"
	"axion/internal/logging"
	"axion/internal/prover"
	"axion/internal/session"
	"axion/internal/solver"
	"axion/internal/store"
)

var (
	verbose    bool
	workspace  string
	configPath string

	logger *zap.Logger
	cfg    *config.Config
	sol    *solver.UniversalSolver
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "axion",
	Short: "AXION - Axiomatic theorem prover and symbolic solver",
	Long: `AXION is a formal reasoning engine built around a small proof kernel.

Every derivation is a sequence of explicit inference steps over literal
expression strings. Successful proofs are replayed by an independent
validator and sealed with a SHA-256 certificate hash.

Theories: Logic, Peano, ZFC, Groups, Rings, Fields, VectorSpaces,
RealAnalysis, Calculus, Topology, CategoryTheory, NumberTheory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if workspace == "" {
			if workspace, err = os.Getwd(); err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}
		}
		if err := logging.Initialize(workspace); err != nil {
			return fmt.Errorf("failed to initialize file logging: %w", err)
		}

		if configPath != "" {
			cfg, err = config.Load(resolvePath(configPath))
		} else {
			cfg, err = config.LoadWorkspace(workspace)
		}
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		sol = solver.New(prover.Config{
			MaxSteps:           cfg.Prover.MaxSteps,
			InstantiationTerms: cfg.Prover.InstantiationTerms,
		})
		if cfg.Session.TheoryFile != "" {
			path := resolvePath(cfg.Session.TheoryFile)
			names, err := sol.Library().LoadFile(path)
			if err != nil {
				return fmt.Errorf("failed to load theory file: %w", err)
			}
			logger.Debug("Loaded theory file",
				zap.String("path", path), zap.Strings("theories", names))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	theoryFlag   string
	maxStepsFlag int
)

// proveCmd proves one or more theorems, in parallel when several are given.
var proveCmd = &cobra.Command{
	Use:   "prove [theorem]...",
	Short: "Attempt to prove theorems in a chosen theory",
	Long: `Runs the bounded forward-chaining prover on each theorem.

Each successful proof is validated step by step, sealed with a certificate
hash, and recorded in the proof store.

Example:
  axion prove --theory Peano "∀n: n + 0 = n"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProve,
}

// verifyCmd looks up a proof certificate.
var verifyCmd = &cobra.Command{
	Use:   "verify [hash]",
	Short: "Verify a proof certificate hash against the proof store",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

var theoriesCmd = &cobra.Command{
	Use:   "theories",
	Short: "List the available axiomatic theories",
	RunE:  runTheories,
}

var axiomsCmd = &cobra.Command{
	Use:   "axioms [theory]",
	Short: "Show the axioms of a theory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAxioms,
}

var variableFlag string

var simplifyCmd = &cobra.Command{
	Use:   "simplify [expression]",
	Short: "Simplify an algebraic expression",
	Args:  cobra.MinimumNArgs(1),
	RunE:  casCommand(solver.KindSimplify),
}

var diffCmd = &cobra.Command{
	Use:   "diff [expression]",
	Short: "Differentiate an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cas.New().Differentiate(strings.Join(args, " "), variableFlag))
		return nil
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate [expression]",
	Short: "Integrate an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cas.New().Integrate(strings.Join(args, " "), variableFlag))
		return nil
	},
}

var equationCmd = &cobra.Command{
	Use:   "equation [equation]",
	Short: "Solve a linear equation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  casCommand(solver.KindSolve),
}

// solveCmd auto-detects the problem kind from the phrasing.
var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Solve a problem, detecting its kind from the phrasing",
	Long: `Detects whether the problem asks for a proof, a derivative, an integral,
a simplification, or an equation solution, then dispatches accordingly.

Examples:
  axion solve "d/dx[x^2]"
  axion solve --theory Peano "prove ∀n: n + 0 = n"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and transfer the proof session",
}

var sessionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show proof session statistics",
	RunE:  runSessionStats,
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the proof history as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionExport,
}

var sessionImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a previously exported proof history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionImport,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: <workspace>/.axion/config.yaml)")

	proveCmd.Flags().StringVarP(&theoryFlag, "theory", "t", "Logic", "Theory to prove in")
	proveCmd.Flags().IntVar(&maxStepsFlag, "max-steps", 0, "Override the step budget for this run")
	solveCmd.Flags().StringVarP(&theoryFlag, "theory", "t", "", "Theory for proof problems")
	diffCmd.Flags().StringVar(&variableFlag, "variable", "x", "Variable to differentiate with respect to")
	integrateCmd.Flags().StringVar(&variableFlag, "variable", "x", "Variable to integrate with respect to")

	sessionCmd.AddCommand(sessionStatsCmd)
	sessionCmd.AddCommand(sessionExportCmd)
	sessionCmd.AddCommand(sessionImportCmd)

	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(theoriesCmd)
	rootCmd.AddCommand(axiomsCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(integrateCmd)
	rootCmd.AddCommand(equationCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(sessionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolvePath makes a config path absolute relative to the workspace.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}

// openSession opens the SQLite-backed proof session. The caller must close
// the returned store.
func openSession() (*session.ProofSession, *store.ProofStore, error) {
	proofStore, err := store.NewProofStore(resolvePath(cfg.Session.DatabasePath))
	if err != nil {
		return nil, nil, err
	}
	s := session.NewSession(cfg.Session.Context)
	s.SetArchive(proofStore)
	if err := s.Restore(); err != nil {
		proofStore.Close()
		return nil, nil, err
	}
	return s, proofStore, nil
}

func runProve(cmd *cobra.Command, args []string) error {
	s, proofStore, err := openSession()
	if err != nil {
		return err
	}
	defer proofStore.Close()

	prv := sol.Prover()
	if maxStepsFlag > 0 {
		prv = prover.New(kernel.New(), sol.Library(), prover.Config{
			MaxSteps:           maxStepsFlag,
			InstantiationTerms: cfg.Prover.InstantiationTerms,
		})
	}

	proofs := make([]*kernel.Proof, len(args))
	var eg errgroup.Group
	eg.SetLimit(4)
	for i, theorem := range args {
		eg.Go(func() error {
			logger.Info("Proving theorem",
				zap.String("theorem", theorem), zap.String("theory", theoryFlag))
			proof, err := prv.Prove(theorem, theoryFlag)
			if err != nil {
				return fmt.Errorf("proving %q: %w", theorem, err)
			}
			proofs[i] = proof
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, proof := range proofs {
		if _, err := s.RecordProof(proof); err != nil {
			return err
		}
		printProof(proof)
	}
	return nil
}

func printProof(proof *kernel.Proof) {
	if proof.IsValid {
		fmt.Printf("PROVED  %s  [%s]\n", proof.Theorem.Content, proof.TheoryContext)
	} else {
		fmt.Printf("FAILED  %s  [%s]\n", proof.Theorem.Content, proof.TheoryContext)
	}
	for _, step := range proof.Steps {
		fmt.Printf("  %3d. %-50s %s\n", step.LineNumber, step.Statement.Content, step.Rule)
	}
	if proof.IsValid {
		fmt.Printf("  certificate: %s\n", proof.ProofHash)
	}
	fmt.Println()
}

func runVerify(cmd *cobra.Command, args []string) error {
	_, proofStore, err := openSession()
	if err != nil {
		return err
	}
	defer proofStore.Close()

	record, ok, err := proofStore.GetByHash(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no proof with certificate %s", args[0])
	}
	fmt.Printf("Theorem:   %s\n", record.Theorem)
	fmt.Printf("Theory:    %s\n", record.Theory)
	fmt.Printf("Steps:     %d\n", record.StepCount)
	fmt.Printf("Axioms:    %s\n", strings.Join(record.AxiomsUsed, ", "))
	fmt.Printf("Timestamp: %s\n", record.Timestamp)
	fmt.Printf("Valid:     %v\n", record.IsValid)
	return nil
}

func runTheories(cmd *cobra.Command, args []string) error {
	for _, name := range sol.ListTheories() {
		axiomList, _ := sol.Axioms(name)
		fmt.Printf("%-16s %d axioms\n", name, len(axiomList))
	}
	return nil
}

func runAxioms(cmd *cobra.Command, args []string) error {
	axiomList, ok := sol.Axioms(args[0])
	if !ok {
		return fmt.Errorf("unknown theory: %s", args[0])
	}
	for _, axiom := range axiomList {
		fmt.Printf("%-24s %s\n", axiom.Name, axiom.Statement)
	}
	return nil
}

// casCommand builds a RunE that dispatches the joined arguments with a fixed
// problem kind.
func casCommand(kind solver.ProblemKind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		result, err := sol.Solve(strings.Join(args, " "), "", kind)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	problem := strings.Join(args, " ")
	result, err := sol.Solve(problem, theoryFlag, solver.KindAuto)
	if err != nil {
		return err
	}
	if result.Kind == solver.KindProve && result.Proof != nil {
		s, proofStore, err := openSession()
		if err != nil {
			return err
		}
		defer proofStore.Close()
		if _, err := s.RecordProof(result.Proof); err != nil {
			return err
		}
	}
	printResult(result)
	return nil
}

func printResult(result *solver.Result) {
	switch result.Kind {
	case solver.KindProve:
		printProof(result.Proof)
	case solver.KindSolve:
		if len(result.Solutions) == 0 {
			fmt.Println("no solution found")
			return
		}
		for _, solution := range result.Solutions {
			fmt.Println(solution)
		}
	default:
		fmt.Println(result.Output)
	}
}

func runSessionStats(cmd *cobra.Command, args []string) error {
	s, proofStore, err := openSession()
	if err != nil {
		return err
	}
	defer proofStore.Close()

	stats := s.Stats()
	fmt.Printf("Proofs:   %d total, %d valid\n", stats.TotalProofs, stats.ValidProofs)
	fmt.Printf("Average:  %.1f steps\n", stats.AverageSteps)
	for theory, count := range stats.ByTheory {
		fmt.Printf("  %-16s %d\n", theory, count)
	}
	if len(stats.TopAxioms) > 0 {
		fmt.Println("Most used axioms:")
		for _, usage := range stats.TopAxioms {
			fmt.Printf("  %-24s %d\n", usage.Axiom, usage.Count)
		}
	}
	return nil
}

func runSessionExport(cmd *cobra.Command, args []string) error {
	s, proofStore, err := openSession()
	if err != nil {
		return err
	}
	defer proofStore.Close()

	if err := s.Export(args[0]); err != nil {
		return err
	}
	fmt.Printf("Exported %d proofs to %s\n", s.Len(), args[0])
	return nil
}

func runSessionImport(cmd *cobra.Command, args []string) error {
	s, proofStore, err := openSession()
	if err != nil {
		return err
	}
	defer proofStore.Close()

	count, err := s.Import(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d proofs from %s\n", count, args[0])
	return nil
}
