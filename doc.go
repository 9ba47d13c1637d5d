// Package showcase is a retained-mode 3D showcase core for [Ebitengine]:
// occlusion-aware picking and camera choreography for a scene of clickable
// screens.
//
// A click is turned into a ray from the camera, tested against the scene's
// pickable targets and then its occluders. If the nearest target is not
// hidden behind an occluder, the camera flies to the focused pose and, after
// a short settle delay, the target's content (video, image, or document) is
// handed to a [Presenter].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := showcase.DefaultConfig()
//	showcase.Run(showcase.RunConfig{
//		Config: &cfg,
//		Scene:  showcase.DefaultLayout(),
//		Presenter: showcase.PresenterFunc(func(a showcase.ContentAction) {
//			log.Println("show", a.Kind, a.Path)
//		}),
//	})
//
// For full control, wire the pieces yourself and call [Controller.Update]
// from your own [ebiten.Game]:
//
//	idx := showcase.Classify(root, cfg.Bindings(), cfg.Occluders)
//	cam := cfg.NewCamera(1280, 720)
//	ctrl := showcase.NewController(idx, showcase.NewChoreographer(cam), cfg, showcase.ControllerOptions{})
//	ctrl.AttachMouse()
//	// each frame:
//	ctrl.Update(now)
//
// # Scene index
//
// [Classify] walks a loaded scene once and sorts geometry nodes into
// pickable targets (names with a content binding, plus [DocumentTargetName]),
// occluders (names listed in the config), and decorative nodes. The
// classification never changes afterwards. A nil scene yields an empty
// [Index] on which every click misses.
//
// # Picking
//
// [Cast] intersects a [Ray] with candidate nodes and their visible
// descendants and returns hits nearest first. [Resolve] and [ResolveClick]
// apply the occlusion rule: a click is blocked only when an occluder hit is
// strictly nearer than the nearest target hit.
//
// # Camera choreography
//
// [Choreographer] runs a single transition at a time. [Choreographer.PanTo]
// replaces any transition in flight (its arrival callback never fires) and
// starts from wherever the camera is. Progress is evaluated with a gween
// tween and position and look-at are interpolated linearly.
//
// # Completion stages
//
// Arrival at the focused pose schedules a settle stage. When it elapses the
// content is revealed. There is only one pending stage: a newer accepted
// click replaces it, so only the most recent target is ever revealed.
//
// # Input
//
// [Controller.Update] consumes one synthetic event per frame from
// [Controller.InjectClick] and friends, otherwise the real mouse once
// [Controller.AttachMouse] was called. A press and release within the drag
// dead zone is a click; a longer drag orbits the camera. [LoadTestScript]
// replays JSON scripts of clicks, drags, waits, screenshots, and reveal
// expectations.
//
// # Configuration
//
// [Config] is loaded from TOML with [LoadConfig] and scene layouts from YAML
// with [LoadLayout]. The ecs subpackage forwards [InteractionEvent] values
// into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
package showcase
