package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/pullback/autodiff"
	"github.com/born-ml/pullback/internal/parallel"
	"github.com/born-ml/pullback/internal/serialization"
	"github.com/born-ml/pullback/nn"
	"github.com/born-ml/pullback/optim"
	"github.com/born-ml/pullback/tensor"
)

type (
	vec      = tensor.Vector
	layer    = nn.AnyLayer[vec, vec]
	tangents = nn.Tangents[autodiff.AnyLayerTangent]
	model    = nn.Sequential[layer, vec, autodiff.AnyLayerTangent]
)

type trainConfig struct {
	epochs   int
	samples  int
	hidden   int
	lr       float64
	momentum float64
	clip     float64
	seed     int64
	every    int
	workers  int
	save     string
	load     string
}

// sample is the loss and parameter tangents of one training point.
type sample struct {
	loss  float64
	grads tangents
}

func runTrain(args []string) error {
	_, err := trainWithArgs(args)
	return err
}

// trainWithArgs parses args, trains, and returns the final loss.
func trainWithArgs(args []string) (float64, error) {
	var cfg trainConfig

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.IntVar(&cfg.epochs, "epochs", 300, "Number of training epochs")
	fs.IntVar(&cfg.samples, "samples", 32, "Number of points sampled from sin(x) on [-pi, pi]")
	fs.IntVar(&cfg.hidden, "hidden", 16, "Hidden layer width")
	fs.Float64Var(&cfg.lr, "lr", 0.05, "Learning rate")
	fs.Float64Var(&cfg.momentum, "momentum", 0.9, "SGD momentum")
	fs.Float64Var(&cfg.clip, "clip", 1.0, "Global gradient norm limit (0 = off)")
	fs.Int64Var(&cfg.seed, "seed", 42, "Weight initialization seed")
	fs.IntVar(&cfg.every, "log-every", 50, "Log the loss every N epochs")
	fs.IntVar(&cfg.workers, "workers", 0, "Gradient workers (0 = one per CPU, 1 = sequential)")
	fs.StringVar(&cfg.save, "save", "", "Write trained parameters to this SafeTensors file")
	fs.StringVar(&cfg.load, "load", "", "Start from parameters in this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, nil
		}
		return 0, err
	}
	if cfg.epochs <= 0 || cfg.samples <= 1 || cfg.hidden <= 0 || cfg.every <= 0 {
		return 0, errors.Errorf("invalid configuration: epochs=%d samples=%d hidden=%d", cfg.epochs, cfg.samples, cfg.hidden)
	}

	m := newModel(cfg)
	if cfg.load != "" {
		dict, _, err := serialization.ReadFile(cfg.load)
		if err != nil {
			return 0, errors.Wrapf(err, "loading %s", cfg.load)
		}
		if m, err = serialization.LoadStateDict(m, dict); err != nil {
			return 0, errors.Wrapf(err, "loading %s", cfg.load)
		}
		fmt.Printf("loaded parameters from %s\n", cfg.load)
	}

	var (
		final   float64
		trained model
	)
	err := autodiff.Recover(func() {
		trained, final = train(cfg, m)
	})
	if err != nil {
		return 0, errors.Wrap(err, "training failed")
	}
	fmt.Printf("final loss: %.6f\n", final)

	if cfg.save != "" {
		metadata := map[string]string{
			"model":  trained.String(),
			"epochs": fmt.Sprint(cfg.epochs),
			"loss":   fmt.Sprintf("%g", final),
		}
		if err := serialization.WriteFile(cfg.save, serialization.StateDict(trained), metadata); err != nil {
			return 0, errors.Wrapf(err, "saving %s", cfg.save)
		}
		fmt.Printf("saved parameters to %s\n", cfg.save)
	}
	return final, nil
}

// newModel builds Dense -> Tanh -> Dense with the configured hidden width.
func newModel(cfg trainConfig) model {
	return nn.NewSequential[layer, vec, autodiff.AnyLayerTangent](
		nn.EraseLayer[nn.Dense, vec, vec, nn.DenseTangent](nn.NewDense(nn.DenseConfig{In: 1, Out: cfg.hidden, Seed: cfg.seed})),
		nn.EraseLayer[nn.Lambda[vec], vec, vec, autodiff.Empty](nn.NewTanh()),
		nn.EraseLayer[nn.Dense, vec, vec, nn.DenseTangent](nn.NewDense(nn.DenseConfig{In: cfg.hidden, Out: 1, Seed: cfg.seed + 1})),
	)
}

// train fits m to sin(x) and returns the trained model with its final mean
// loss.
func train(cfg trainConfig, m model) (model, float64) {
	xs, ys := sineDataset(cfg.samples)

	optimizer := optim.NewSGD[model, tangents](optim.SGDConfig{
		LR:       cfg.lr,
		Momentum: cfg.momentum,
		ClipNorm: cfg.clip,
	})

	fmt.Printf("Model: %v\n", m)
	fmt.Printf("Training on %d samples for %d epochs (lr=%g, momentum=%g, clip=%g)\n",
		cfg.samples, cfg.epochs, cfg.lr, cfg.momentum, cfg.clip)

	pcfg := parallel.DefaultConfig()
	if cfg.workers > 0 {
		pcfg.NumWorkers = cfg.workers
		pcfg.Enabled = cfg.workers > 1
	}

	var epochLoss float64
	for epoch := 1; epoch <= cfg.epochs; epoch++ {
		samples := parallel.Map(len(xs), func(i int) sample {
			return step(m, xs[i], ys[i])
		}, pcfg)

		var batch tangents
		epochLoss = 0
		for _, s := range samples {
			epochLoss += s.loss
			batch = batch.Add(s.grads)
		}
		epochLoss /= float64(len(xs))
		m = optimizer.Step(m, batch.Scale(1/float64(len(xs))))

		if epoch == 1 || epoch%cfg.every == 0 || epoch == cfg.epochs {
			log.Printf("epoch %4d  loss %.6f", epoch, epochLoss)
		}
	}
	return m, epochLoss
}

// step returns the loss and parameter tangents for one training point.
func step(m model, x, target vec) sample {
	y, pb := m.ValueWithPullback(x)
	loss, lossPB := nn.MSELoss(target)(y)
	grads, _ := pb(lossPB(1))
	return sample{loss: float64(loss), grads: grads}
}

func sineDataset(n int) (xs, ys []vec) {
	xs = make([]vec, n)
	ys = make([]vec, n)
	for i := range n {
		x := -math.Pi + 2*math.Pi*float64(i)/float64(n-1)
		xs[i] = tensor.NewVector(x)
		ys[i] = tensor.NewVector(math.Sin(x))
	}
	return xs, ys
}
