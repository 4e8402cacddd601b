package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alineos/kitcell/internal/contract"
	"github.com/alineos/kitcell/internal/domain"
	"github.com/alineos/kitcell/internal/knowledge"
	"github.com/alineos/kitcell/internal/validate"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <kind> <file>",
		Short: "Validate a JSON contract instance against the loaded catalogs",
		Long: "Validate a JSON contract instance against the domain environment and task " +
			"catalog named by the config file. Kinds: observation, belief, world, plan, task.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			env, err := domain.Load(cfg.DomainPath)
			if err != nil {
				return err
			}
			catalog := knowledge.Default()
			if cfg.TasksPath != "" {
				if catalog, err = knowledge.LoadCatalog(cfg.TasksPath); err != nil {
					return err
				}
			}
			v := validate.New(env, catalog)
			v.Tolerance = cfg.Belief.Tolerance

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read instance: %w", err)
			}
			if err := checkInstance(v, args[0], data); err != nil {
				return err
			}
			log.Info().Str("kind", args[0]).Str("file", args[1]).Msg("instance is valid")
			return nil
		},
	}
}

func checkInstance(v *validate.Validator, kind string, data []byte) error {
	switch kind {
	case "observation":
		var o contract.Observation
		if err := json.Unmarshal(data, &o); err != nil {
			return fmt.Errorf("decode observation: %w", err)
		}
		return v.Observation(o)
	case "belief":
		var b contract.BeliefState
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode belief state: %w", err)
		}
		return v.BeliefState(b)
	case "world":
		var w contract.WorldState
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decode world state: %w", err)
		}
		return v.WorldState(w)
	case "plan":
		var p contract.AbstractPlan
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode plan: %w", err)
		}
		return v.Plan(p)
	case "task":
		var ti contract.TaskInstance
		if err := json.Unmarshal(data, &ti); err != nil {
			return fmt.Errorf("decode task instance: %w", err)
		}
		return v.TaskInstance(ti)
	default:
		return fmt.Errorf("unknown kind %q (want observation|belief|world|plan|task)", kind)
	}
}
