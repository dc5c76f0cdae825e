package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"churnlab/common"
	"churnlab/dataset"
	"churnlab/db"
	"churnlab/eval"
	"churnlab/ml"
)

type Config struct {
	Dataset struct {
		Path    string              `yaml:"path"`
		Options dataset.LoadOptions `yaml:",inline"`
	} `yaml:"dataset"`
	Split struct {
		TestRatio float64 `yaml:"test_ratio"`
		Seed      int64   `yaml:"seed"`
	} `yaml:"split"`
	Search ml.SearchConfig `yaml:"search"`
	Models struct {
		Baseline bool `yaml:"baseline"`
		Logistic bool `yaml:"logistic"`
		Forest   bool `yaml:"forest"`
	} `yaml:"models"`
	Variants struct {
		Scaled   bool `yaml:"scaled"`
		Balanced bool `yaml:"balanced"`
	} `yaml:"variants"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Log common.LogConfig `yaml:"log"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	watch := flag.Bool("watch", false, "re-run the comparison when the dataset file changes")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := common.NewLogger(config.Log)
	defer logger.Sync()

	if err := db.InitDB(config.Database.Path); err != nil {
		logger.Fatalw("Failed to initialize database", "error", err)
	}
	defer db.CloseDB()

	cleaner := dataset.NewDataCleaner(config.Dataset.Options.LabelColumn, config.Dataset.Options.IDColumn)
	loader, err := dataset.NewLoader(8, cleaner)
	if err != nil {
		logger.Fatalw("Failed to create loader", "error", err)
	}

	if err := runComparison(config, loader, logger); err != nil {
		logger.Fatalw("Comparison run failed", "error", err)
	}

	if !*watch {
		return
	}
	if err := watchDataset(config, loader, logger); err != nil {
		logger.Fatalw("Watch mode failed", "error", err)
	}
}

func runComparison(config *Config, loader *dataset.Loader, logger *zap.SugaredLogger) error {
	start := time.Now()
	table, err := loader.Load(config.Dataset.Path, config.Dataset.Options)
	if err != nil {
		return err
	}
	logger.Infow("Dataset loaded", "rows", table.Rows(), "features", len(table.FeatureNames))

	trainX, trainY, testX, testY, err := dataset.StratifiedSplit(
		table.Features, table.Labels, config.Split.TestRatio, config.Split.Seed)
	if err != nil {
		return err
	}

	type variant struct {
		name   string
		trainX [][]float64
		trainY []int
		testX  [][]float64
		testY  []int
	}
	variants := []variant{{"raw", trainX, trainY, testX, testY}}

	if config.Variants.Scaled || config.Variants.Balanced {
		scaler := &dataset.StandardScaler{}
		scaledTrain, err := scaler.FitTransform(trainX)
		if err != nil {
			return err
		}
		scaledTest, err := scaler.Transform(testX)
		if err != nil {
			return err
		}
		if config.Variants.Scaled {
			variants = append(variants, variant{"scaled", scaledTrain, trainY, scaledTest, testY})
		}
		if config.Variants.Balanced {
			balancedX, balancedY, err := dataset.Oversample(scaledTrain, trainY, 5, config.Split.Seed)
			if err != nil {
				return err
			}
			variants = append(variants, variant{"balanced", balancedX, balancedY, scaledTest, testY})
		}
	}

	comparison := &eval.Comparison{}
	for _, v := range variants {
		for _, candidate := range buildModels(config) {
			tag := candidate.name + "/" + v.name
			logger.Infow("Evaluating", "model", tag)
			if err := comparison.Evaluate(tag, candidate.model, v.trainX, v.trainY, v.testX, v.testY); err != nil {
				return err
			}
		}
	}

	fmt.Print(comparison.String())

	runID := start.UTC().Format("20060102T150405Z")
	if err := db.SaveRows(runID, comparison.Rows()); err != nil {
		return err
	}
	logger.Infow("Comparison saved", "run", runID, "rows", comparison.Len(), "elapsed", time.Since(start))
	return nil
}

type candidate struct {
	name  string
	model ml.Model
}

func buildModels(config *Config) []candidate {
	seed := config.Split.Seed
	search := config.Search
	if search.Seed == 0 {
		search.Seed = seed
	}

	var out []candidate
	if config.Models.Baseline {
		out = append(out, candidate{"baseline", ml.NewRandomBaseline(uint64(seed))})
	}
	if config.Models.Logistic {
		out = append(out, candidate{"logistic", ml.NewRandomizedSearch("logistic", search, func() ml.Searchable {
			return ml.NewLogisticRegression(seed)
		})})
	}
	if config.Models.Forest {
		out = append(out, candidate{"forest", ml.NewRandomizedSearch("forest", search, func() ml.Searchable {
			return ml.NewRandomForest(seed)
		})})
	}
	return out
}

func watchDataset(config *Config, loader *dataset.Loader, logger *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(config.Dataset.Path); err != nil {
		return err
	}
	logger.Infow("Watching dataset", "path", config.Dataset.Path)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Infow("Dataset changed, re-running", "event", event.Op.String())
			loader.Invalidate(config.Dataset.Path, config.Dataset.Options)
			if err := runComparison(config, loader, logger); err != nil {
				logger.Errorw("Re-run failed", "error", err)
			}
		case err := <-watcher.Errors:
			logger.Errorw("Watcher error", "error", err)
		case <-quit:
			logger.Info("Exiting")
			return nil
		}
	}
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
