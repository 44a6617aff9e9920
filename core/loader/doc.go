// Package loader mounts HTTP features onto the fiber application.
//
// A feature bundles a service and its handler and exposes them through the Feature
// interface. The Manager loads features in registration order, skips disabled ones
// and refuses two features with the same name.
//
//	mgr := loader.NewManager()
//	mgr.Register(listings.NewFeature(engine, store, log))
//	mgr.Register(status.NewFeature(engine, client, store, steamID, log))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
