// Package lumen composes 2D scenes with dynamic point lights and a shared
// shadow map, drawn through [Ebitengine].
//
// A [Scene] owns an ordered list of [SceneLayer]s. Each layer holds sprites,
// animated sprites, particles, lights, and light-blocking shapes, and draws
// in three steps every frame:
//
//  1. sprites, animated sprites, and particles onto the frame;
//  2. every light's color pass onto the frame under additive blending;
//  3. silhouettes of every occluder into the shadow map, then every light's
//     carve pass under destination-minus-source blending.
//
// The shadow map is cleared to the ambient darkness once per frame, shared by
// all layers, and multiplied over the frame by the backend after the last
// layer has drawn.
//
// # Quick start
//
//	cfg, _ := lumen.LoadConfig("lumen.yaml") // "" for defaults
//	scene, err := lumen.NewScene(lumen.NewEbitenRenderer(), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	world := scene.AddLayer("world")
//	torch, _ := lumen.NewLight(lumen.Vec(200, 150), 120, lumen.Color{R: 1, G: 0.8, B: 0.5, A: 1}, 0.9)
//	world.AddLight(torch)
//	world.AddLightBlocker(lumen.NewRectangle(260, 120, 40, 60))
//
//	lumen.Run(scene, lumen.RunConfig{Title: "Torchlight", ShowFPS: true})
//
// For full control, wrap the scene in a [Game] or implement [ebiten.Game]
// yourself and call [EbitenRenderer.Begin], [Scene.Draw], and
// [EbitenRenderer.CompositeShadow] in that order.
//
// # Particles and motion
//
// A [Particle] pairs a [BoundedObject] with a [MotionStrategy]. Each update
// sets the object's position to its starting position plus the strategy's
// displacement for the particle's total living time, so positions never
// drift with frame rate. [ParticleEmitter] spawns particles into a layer.
//
// # Backends
//
// Everything above the [Renderer] interface is backend-agnostic and can be
// driven by any implementation, which is how the package's tests observe
// the exact sequence of draw calls.
//
// [Ebitengine]: https://ebitengine.org
package lumen
