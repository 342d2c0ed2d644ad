package lifecycletest

import "github.com/oliverbestmann/cubes/lifecycle"

// Script is a lifecycle.Source replaying a fixed list of signals.
type Script []lifecycle.Signal

func (s Script) Run(handle func(lifecycle.Signal) error) error {
	for _, sig := range s {
		if err := handle(sig); err != nil {
			return err
		}
	}

	return nil
}
