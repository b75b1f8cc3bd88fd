// ./cmd/masses/main.go

// Command masses prints the planetary masses recorded in an ephemeris file.
package main

/*
Command masses prints planetary masses from an ephemeris file.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.

Authorship:
Mohammad Shafiee authored this Go code as a translation of the original C code.
The C version was a translation of Fortran-77 code originally written by
Piotr A. Dybczynski and later revised by Bill J Gray.
*/

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mshafiee/calceph"
	"github.com/mshafiee/calceph/internal/config"
	"github.com/mshafiee/calceph/internal/logging"
)

const nMasses = 16

var names = [nMasses]string{"Sun ", "Merc", "Venu", "EMB ", "Mars",
	"Jupi", "Satu", "Uran", "Nept", "Plut", "Eart", "Moon",
	"Cere", "Pall", "Juno", "Vest"}

// massConstants maps a table row to the constant holding its GM in
// AU³/day². EMB, Earth and Moon are derived from GMB and EMRAT.
var massConstants = map[int]string{
	0: "GMS", 1: "GM1", 2: "GM2", 4: "GM4", 5: "GM5",
	6: "GM6", 7: "GM7", 8: "GM8", 9: "GM9",
	12: "MA0001", 13: "MA0002", 14: "MA0003", 15: "MA0004",
}

// constantSource is satisfied by *calceph.Ephemeris and *calceph.Shared.
type constantSource interface {
	Constant(name string) (float64, error)
}

// lookup returns the constant, or 0 when the file does not carry it.
func lookup(src constantSource, name string) (float64, error) {
	v, err := src.Constant(name)
	if errors.Is(err, calceph.ErrNativeFailure) {
		return 0, nil
	}
	return v, err
}

// massTable returns the GM of every row in AU³/day², and the AU in km.
func massTable(src constantSource) ([nMasses]float64, float64, error) {
	var masses [nMasses]float64
	for i, name := range massConstants {
		v, err := lookup(src, name)
		if err != nil {
			return masses, 0, err
		}
		masses[i] = v
	}
	gmb, err := lookup(src, "GMB")
	if err != nil {
		return masses, 0, err
	}
	emrat, err := lookup(src, "EMRAT")
	if err != nil {
		return masses, 0, err
	}
	auInKm, err := lookup(src, "AU")
	if err != nil {
		return masses, 0, err
	}

	// Correct Earth and Moon masses based on EMRAT
	masses[3] = gmb                // EMB
	masses[11] = gmb / (1 + emrat) // Moon
	masses[10] = gmb - masses[11]  // Earth
	return masses, auInKm, nil
}

func printTable(w io.Writer, source string, masses [nMasses]float64, auInKm float64) {
	const secondsPerDay = 86400.0
	fmt.Fprintf(w, "Data from %s\n", source)
	fmt.Fprintf(w, "%5s %21s %18s %19s %20s %20s\n",
		"Body",
		"mass(obj)/mass(sun)",
		"mass(sun)/mass(obj)",
		"GM (km³/s²)",
		"GM (AU³/day²)",
		"mass(obj)",
	)
	for i := 0; i < nMasses; i++ {
		massRatioSun := masses[i] / masses[0]
		sunRatioMass := masses[0] / masses[i]
		gmKM := masses[i] * auInKm * auInKm * auInKm / (secondsPerDay * secondsPerDay)
		gmAU := (masses[i] * secondsPerDay * secondsPerDay) / (auInKm * auInKm * auInKm)

		fmt.Fprintf(w, "%5s %21.15e %21.15e %21.15e %21.15e %21.15e\n",
			names[i],
			massRatioSun,
			sunRatioMass,
			gmKM,
			gmAU,
			masses[i],
		)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "'masses' takes the name of an ephemeris file as a command-line argument.\n")
		fmt.Fprintf(os.Stderr, "It will output a list of planetary masses in a table of the sort found\n")
		fmt.Fprintf(os.Stderr, "at the end of 'main.go' (q.v.).\n")
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	eph, err := calceph.Open(os.Args[1], append(cfg.OpenOptions(), calceph.WithLogger(logger))...)
	if err != nil {
		fmt.Printf("Ephemeris not loaded from '%s'\n", os.Args[1])
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer eph.Close()

	masses, auInKm, err := massTable(eph)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	printTable(os.Stdout, os.Args[1], masses, auInKm)
}

/*
Data from ./lnxm13000p17000.431
 Body   mass(obj)/mass(sun) mass(sun)/mass(obj)         GM (km³/s²)        GM (AU³/day²)            mass(obj)
 Sun  1.000000000000000e+00 1.000000000000000e+00 1.327124400419394e+11 6.598027659259623e-19 2.959122082855911e-04
 Merc 1.660114153054349e-07 6.023682155592479e+06 2.203178000000002e+04 1.095347909938096e-25 4.912480450364760e-11
 Venu 2.447838287784772e-06 4.085237186582997e+05 3.248585920000000e+05 1.615090472819864e-24 7.243452332644120e-10
 EMB  3.040432648022641e-06 3.289005598102475e+05 4.035032355022598e+05 2.006085870776937e-24 8.997011390199871e-10
 Mars 3.227156037554997e-07 3.098703590290707e+06 4.282837521400001e+04 2.129286479653456e-25 9.549548695550771e-11
 Jupi 9.547919152112403e-04 1.047348625463337e+03 1.267127648000002e+08 6.299743465401234e-22 2.825345840833870e-07
 Satu 2.858856727222417e-04 3.497901767786633e+03 3.794058520000000e+07 1.886281576007395e-22 8.459706073245031e-08
 Uran 4.366243735831270e-05 2.290298161308703e+04 5.794548600000009e+06 2.880859693608379e-23 1.292024825782960e-08
 Nept 5.151383772628674e-05 1.941225977597307e+04 6.836527100580023e+06 3.398897261526518e-23 1.524357347885110e-08
 Plut 7.361781606089468e-09 1.358366837686175e+08 9.770000000000007e+02 4.857323865840705e-27 2.178441051974180e-12
 Eart 3.003489614915764e-06 3.329460488339481e+05 3.986004354360960e+05 1.981710755351325e-24 8.887692445125634e-10
 Moon 3.694303310687700e-08 2.706870324120324e+07 4.902800066163795e+03 2.437511542561185e-26 1.093189450742367e-11
 Cere 4.732743418347629e-10 2.112939391819251e+09 6.280939271413429e+01 3.122677197843660e-28 1.400476556172344e-13
 Pall 1.049111226915838e-10 9.531877787065401e+09 1.392301107993935e+01 6.922064892830496e-29 3.104448198938713e-14
 Juno 1.222503910232921e-11 8.179932936242897e+10 1.622414768878230e+00 8.066114613269857e-30 3.617538317147937e-15
 Vest 1.302666831538261e-10 7.676559929135098e+09 1.728800937751447e+01 8.595031785289547e-29 3.854750187808810e-14
*/
