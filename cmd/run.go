package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dkoval/interview-trainer/internal/interview"
	"github.com/dkoval/interview-trainer/internal/logger"
)

const (
	PromptShowReport = "Show full report (JSON)"
	PromptDumpReport = "Dump report to file"
	PromptExit       = "Exit"

	// lowTimeWarning is the remaining-seconds mark at which the countdown
	// is echoed to the candidate.
	lowTimeWarning = 10
)

var errExit = errors.New("exit requested")

var reportPrompt = promptui.Select{
	Label: "Interview finished. What next?",
	Items: []string{PromptShowReport, PromptDumpReport, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a timed adaptive mock-interview session in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume-file", "r", "", "path to a plain-text resume file")
	runCmd.Flags().StringP("jd-file", "o", "", "path to a plain-text job description file")

	viper.BindPFlag("interview.resume-file", runCmd.Flags().Lookup("resume-file"))
	viper.BindPFlag("interview.job-description-file", runCmd.Flags().Lookup("jd-file"))
}

// run drives one interview session: questions and the countdown arrive as
// session events, answers arrive as stdin lines.
func run(_ *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-trainer", zap.String("version", version))

	resume, jd, err := loadCandidateInputs(config)
	if err != nil {
		logger.Fatal("loading candidate inputs",
			zap.Error(err),
			zap.String("hint", "set interview.resume-file and interview.job-description-file, or pass --resume-file and --jd-file"),
		)
	}

	session := interview.New(&interview.Config{Logger: logger})

	if err := session.Start(resume, jd); err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}

	answers := readAnswers(os.Stdin)

	for {
		select {
		case ev := <-session.Events():
			switch ev.Kind {
			case interview.EventQuestion:
				printQuestion(ev.View)
			case interview.EventTick:
				if ev.View.TimeLeft == lowTimeWarning {
					fmt.Printf("\n[%d seconds left]\n> ", ev.View.TimeLeft)
				}
			case interview.EventFinished:
				printSummary(ev.View)
				if err := reportActions(ev.View.Report, logger); err != nil && !errors.Is(err, errExit) {
					logger.Fatal("exiting", zap.Error(err))
				}
				return
			}
		case line, ok := <-answers:
			if !ok {
				logger.Info("exiting", zap.String("reason", "input closed"))
				return
			}
			if err := session.Submit(line); err != nil {
				if errors.Is(err, interview.ErrInvalidInput) {
					fmt.Println("Please type an answer before submitting.")
					fmt.Print("> ")
					continue
				}
				logger.Fatal("submitting the answer", zap.Error(err))
			}
		}
	}
}

// reportActions is the post-interview prompt loop.
func reportActions(report *interview.Report, logger *zap.Logger) error {
	for {
		_, action, err := reportPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptShowReport:
			pretty, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(pretty))
		case PromptDumpReport:
			filename, err := report.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dump report to file: %w", err)
			}
			logger.Info("dumping report to file", zap.String("filename", filename))
		case PromptExit:
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func loadCandidateInputs(config *Config) (string, string, error) {
	if config == nil || config.Interview == nil {
		return "", "", errors.New("interview configuration is required")
	}

	resumeFile := strings.TrimSpace(config.Interview.ResumeFile)
	jdFile := strings.TrimSpace(config.Interview.JobDescriptionFile)
	if resumeFile == "" || jdFile == "" {
		return "", "", errors.New("resume and job description files are required")
	}

	resume, err := os.ReadFile(resumeFile)
	if err != nil {
		return "", "", fmt.Errorf("reading resume: %w", err)
	}

	jd, err := os.ReadFile(jdFile)
	if err != nil {
		return "", "", fmt.Errorf("reading job description: %w", err)
	}

	return string(resume), string(jd), nil
}

// readAnswers forwards stdin lines to a channel so the event loop can select
// between candidate input and session events.
func readAnswers(r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}

func printQuestion(v interview.View) {
	fmt.Printf("\nQuestion %d (%s): %s\n", v.QuestionIndex+1, v.Difficulty, v.Question)
	fmt.Printf("Time limit: %ds. Press ENTER to submit.\n> ", v.TimeLeft)
}

func printSummary(v interview.View) {
	report := v.Report
	if report == nil {
		return
	}

	fmt.Println("\nInterview Finished")
	fmt.Printf("Final Interview Readiness Score: %.1f/100\n", report.AverageScore)
	fmt.Printf("Hiring Readiness: %s\n", report.Readiness)

	fmt.Println("\nPerformance Breakdown")
	fmt.Printf("  Technical Skills: %s\n", report.Technical)
	fmt.Printf("  Communication: %s\n", report.Communication)
	fmt.Printf("  Problem Solving: %s\n", report.ProblemSolving)

	if len(report.Strengths) > 0 {
		fmt.Printf("\nStrengths: %s\n", strings.Join(report.Strengths, ", "))
	}
	if len(report.Weaknesses) > 0 {
		fmt.Printf("Areas for Improvement: %s\n", strings.Join(report.Weaknesses, ", "))
	}

	fmt.Println("\nActionable Feedback")
	for _, f := range report.Feedback {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Println()
}
