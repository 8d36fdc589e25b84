// Package serialization saves and loads model parameters in the SafeTensors
// format.
//
// Parameters are collected from any keypath.Iterable model: every
// tensor.Vector, tensor.Matrix and scalar leaf becomes one tensor named by
// its key path ("[0].weight", "[2].bias").
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes]
//
// Tensors are written as F64 in alphabetical order by name. F32 tensors
// written by other tools are widened on read.
//
// Example usage:
//
//	dict := serialization.StateDict(model)
//	if err := serialization.WriteFile("model.safetensors", dict, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	dict, metadata, err := serialization.ReadFile("model.safetensors")
package serialization
